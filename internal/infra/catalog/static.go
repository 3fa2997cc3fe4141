// Package catalog provides the curated showcase catalog backing the
// public product directory.
package catalog

import (
	"sapa/internal/domain/entity"
	"sapa/internal/domain/repository"
)

type staticRepository struct {
	products []*entity.CatalogProduct
	bySlug   map[string]*entity.CatalogProduct
}

// NewStaticRepository returns a repository serving the curated catalog.
// Entries are fixed at build time and served in curation order.
func NewStaticRepository() repository.CatalogRepository {
	repo := &staticRepository{
		products: catalogProducts,
		bySlug:   make(map[string]*entity.CatalogProduct, len(catalogProducts)),
	}
	for _, product := range catalogProducts {
		repo.bySlug[product.Slug] = product
	}

	return repo
}

func (r *staticRepository) All() []*entity.CatalogProduct {
	out := make([]*entity.CatalogProduct, len(r.products))
	copy(out, r.products)

	return out
}

func (r *staticRepository) BySlug(slug string) (*entity.CatalogProduct, error) {
	if slug == "" {
		return nil, repository.ErrCatalogEntryNotFound
	}
	product, ok := r.bySlug[slug]
	if !ok {
		return nil, repository.ErrCatalogEntryNotFound
	}

	return product, nil
}

var catalogProducts = []*entity.CatalogProduct{
	{
		Slug:     "kopi-rempah-nusantara",
		Name:     "Kopi Rempah Nusantara",
		Category: "Kuliner",
		Origin:   "Bandung, Jawa Barat",
		Price:    "Rp58.000 / 200gr",
		Description: "Blend arabika dengan rempah hangat (kayu manis, kapulaga, cengkih) " +
			"yang diproses medium roast dan cocok menjadi signature drink kafe modern.",
		Highlight: "Best Seller • 4.8⭐",
		Badges:    []string{"Non-GMO", "Fair Trade", "Cold Brew Ready"},
		Features: []string{
			"Biji arabika 100% dengan profil rasa manis-rempah yang seimbang.",
			"Proses roasting menggunakan airflow roaster untuk menjaga aroma rempah.",
			"Tersedia varian bubuk dripbag dan biji utuh untuk kebutuhan kafe.",
		},
		Logistics: []string{
			"MOQ 25 pack (200gr) per pengiriman.",
			"Lead time produksi 3 hari kerja, pengiriman nasional via ekspedisi reguler/instan.",
			"Kemasan aluminium foil dengan valve, ketahanan rasa 6 bulan.",
		},
		BannerImage:  "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd?auto=format&fit=crop&w=1400&q=80",
		ContactEmail: "catalog@kopinusantara.id",
		ContactPhone: "+62 812-3456-7890",
	},
	{
		Slug:     "tenun-ikat-larantuka",
		Name:     "Tenun Ikat Larantuka",
		Category: "Fesyen & Kriya",
		Origin:   "Flores Timur, NTT",
		Price:    "Rp325.000 / lembar",
		Description: "Tenun ikat motif Larantuka yang diwarnai secara alami dari daun tarum, " +
			"kunyit, dan kulit kayu. Cocok untuk busana etnik, scarf premium, maupun dekorasi rumah.",
		Highlight: "Kurasi Nasional 2025",
		Badges:    []string{"Pewarna Alami", "Handloom", "Limited Batch"},
		Features: []string{
			"Setiap lembar ditenun manual oleh perajin perempuan dengan teknik pewarnaan bertingkat.",
			"Tersedia ukuran 210 x 60 cm dan dapat dipesan custom motif corporate.",
			"Sertifikasi kriya daerah dan didampingi pelatihan desain kontemporer.",
		},
		Logistics: []string{
			"MOQ 10 lembar / pesanan, dapat mix motif.",
			"Lead time produksi 7-10 hari tergantung kompleksitas motif.",
			"Pengemasan hard box dan silika gel, aman untuk pengiriman ekspor.",
		},
		BannerImage:  "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=1400&q=80",
		ContactEmail: "catalog@larantukatenun.com",
		ContactPhone: "+62 813-9988-1122",
	},
	{
		Slug:     "snack-sehat-sorgum-crunch",
		Name:     "Snack Sehat Sorgum Crunch",
		Category: "Pangan Fungsional",
		Origin:   "Gunung Kidul, DIY",
		Price:    "Rp32.000 / pack",
		Description: "Camilan renyah berbahan utama sorgum lokal, tinggi serat, tanpa gula rafinasi, " +
			"dan diperkaya prebiotik inulin. Varian rasa original, keju, dan smoky bbq.",
		Highlight: "Sertifikasi PIRT & Halal",
		Badges:    []string{"Gluten-Free", "High Fiber", "Low GI"},
		Features: []string{
			"Menggunakan sorgum lokal Gunung Kidul yang kaya antioksidan dan mineral.",
			"Dipanggang (bukan digoreng) untuk menjaga kalori tetap rendah.",
			"Kemasan travel pack 80gr dan family pack 200gr dengan zipper lock.",
		},
		Logistics: []string{
			"MOQ 50 pack per rasa, bisa mix varian.",
			"Lead time 5 hari kerja, dapat fulfillment dropship dan B2B.",
			"Sudah tersedia kemasan white-label untuk private brand.",
		},
		BannerImage:  "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=1400&q=80",
		ContactEmail: "catalog@sorgumcrunch.co.id",
		ContactPhone: "+62 811-5566-7788",
	},
	{
		Slug:     "essential-oil-citrus-bloom",
		Name:     "Essential Oil Citrus Bloom",
		Category: "Kecantikan & Aromaterapi",
		Origin:   "Denpasar, Bali",
		Price:    "Rp74.000 / 10ml",
		Description: "Campuran jeruk bali, ylang-ylang, dan jeruk purut secara cold-pressed. " +
			"Ideal untuk aromaterapi diffuser, spa, maupun lini wellness hotel.",
		Highlight: "Eco Packaging • Refill",
		Badges:    []string{"IFRA Certified", "Cruelty-Free", "Vegan"},
		Features: []string{
			"Konsentrasi pure essential oil tanpa campuran carrier, tingkat penguapan medium.",
			"Tersedia layanan private label dan custom aroma untuk hotel/resort.",
			"Kemasan kaca amber dengan dropper dan opsi refill 50ml.",
		},
		Logistics: []string{
			"MOQ 40 botol 10ml atau 10 botol refill 50ml.",
			"Lead time 4 hari kerja, pengiriman aman dengan bubble wrap & kotak kayu.",
			"Dokumen MSDS tersedia untuk kebutuhan ekspor/ritel modern.",
		},
		BannerImage:  "https://images.unsplash.com/photo-1501426026826-31c667bdf23d?auto=format&fit=crop&w=1400&q=80",
		ContactEmail: "catalog@citrusbloom.id",
		ContactPhone: "+62 812-2222-3344",
	},
}
