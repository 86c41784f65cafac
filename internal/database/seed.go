package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/mill-store-backend/internal/banner"
	"github.com/wichananm65/mill-store-backend/internal/category"
	"github.com/wichananm65/mill-store-backend/internal/product"
)

type seedCategory struct {
	name, image string
	products    []seedProduct
}

type seedProduct struct {
	name, desc, image string
	original, selling string
	stock             int
}

var seedCatalog = []seedCategory{
	{"Flour", "/category/flour.png", []seedProduct{
		{"Whole Wheat Atta", "Stone ground whole wheat flour", "/products/atta.png", "450", "399", 120},
		{"Multi Grain Atta", "Wheat, jowar, bajra and ragi blend", "/products/multigrain.png", "520", "480", 80},
	}},
	{"Spices", "/category/spices.png", []seedProduct{
		{"Turmeric Powder", "Freshly ground haldi", "/products/turmeric.png", "120", "99", 200},
		{"Red Chilli Powder", "Sun dried and ground", "/products/chilli.png", "150", "135", 150},
	}},
	{"Grains", "/category/grains.png", []seedProduct{
		{"Sharbati Wheat", "Whole grain, cleaned", "/products/wheat.png", "60", "60", 500},
	}},
}

type seedBanner struct {
	title, subtitle, image string
}

var seedBanners = []seedBanner{
	{"10-20% OFF", "Now in Multi-Grain Flour", "/banners/multigrain.png"},
	{"Free doorstep grinding", "Book a slot from the Booking tab", "/banners/grinding.png"},
}

// Seed inserts a starter catalogue when the categories table is empty and
// the home banners when the banners table is empty. It returns the number of
// products inserted.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	n, err := seedProducts(ctx, db)
	if err != nil {
		return 0, err
	}
	if err := seedHomeBanners(ctx, db); err != nil {
		return 0, err
	}
	return n, nil
}

func seedHomeBanners(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners`).Scan(&count); err != nil {
		return fmt.Errorf("count banners: %w", err)
	}
	if count > 0 {
		return nil
	}
	for i, b := range seedBanners {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO banners (title, subtitle, image, ord) VALUES ($1, $2, $3, $4)`,
			b.title, b.subtitle, b.image, len(seedBanners)-i,
		); err != nil {
			return fmt.Errorf("seed banner %s: %w", b.title, err)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for i, cat := range seedCatalog {
		var catID int
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO categories (name, image, ord) VALUES ($1, $2, $3) RETURNING id`,
			cat.name, cat.image, len(seedCatalog)-i,
		).Scan(&catID); err != nil {
			return 0, fmt.Errorf("seed category %s: %w", cat.name, err)
		}
		for _, p := range cat.products {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO products (name, description, images, original_price, selling_price, category_id, stock)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				p.name, p.desc, pq.Array([]string{p.image}), p.original, p.selling, catID, p.stock,
			); err != nil {
				return 0, fmt.Errorf("seed product %s: %w", p.name, err)
			}
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

// SeedCatalog returns the starter catalogue with ids assigned, for running
// without a database.
func SeedCatalog() ([]category.Category, []product.Product) {
	cats := make([]category.Category, 0, len(seedCatalog))
	products := make([]product.Product, 0)
	for i, cat := range seedCatalog {
		catID := i + 1
		image := cat.image
		cats = append(cats, category.Category{ID: catID, Name: cat.name, Image: &image, Order: len(seedCatalog) - i})
		for _, p := range cat.products {
			id := catID
			products = append(products, product.Product{
				ID:            len(products) + 1,
				Name:          p.name,
				Description:   p.desc,
				Images:        []string{p.image},
				OriginalPrice: decimal.RequireFromString(p.original),
				SellingPrice:  decimal.RequireFromString(p.selling),
				CategoryID:    &id,
				Stock:         p.stock,
			})
		}
	}
	return cats, products
}

// SeedBanners returns the home banners with ids assigned.
func SeedBanners() []banner.Banner {
	out := make([]banner.Banner, 0, len(seedBanners))
	for i, b := range seedBanners {
		image := b.image
		out = append(out, banner.Banner{ID: i + 1, Title: b.title, Subtitle: b.subtitle, Image: &image, Order: len(seedBanners) - i})
	}
	return out
}
