package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		date_joined DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		image VARCHAR(1000) NOT NULL DEFAULT '',
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS subcategories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		category_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		image VARCHAR(1000) NOT NULL DEFAULT '',
		sort_order INT NOT NULL DEFAULT 0,
		CONSTRAINT fk_subcategories_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		category_id BIGINT NOT NULL,
		subcategory_id BIGINT NULL,
		price DECIMAL(10,2) NOT NULL,
		original_price DECIMAL(10,2) NULL,
		discount_percentage INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL,
		short_description TEXT NOT NULL,
		features JSON NOT NULL,
		delivery_info TEXT NOT NULL,
		returns_guarantee TEXT NOT NULL,
		delivery_charges DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		is_bestseller BOOLEAN NOT NULL DEFAULT FALSE,
		is_new BOOLEAN NOT NULL DEFAULT FALSE,
		rating DECIMAL(3,1) NOT NULL DEFAULT 0.0,
		review_count INT NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_products_created_at (created_at),
		CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE,
		CONSTRAINT fk_products_subcategory FOREIGN KEY (subcategory_id) REFERENCES subcategories(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		url VARCHAR(1000) NOT NULL,
		CONSTRAINT fk_product_images_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS product_videos (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		url VARCHAR(1000) NOT NULL,
		CONSTRAINT fk_product_videos_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS product_colors (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		name VARCHAR(50) NOT NULL,
		image VARCHAR(1000) NOT NULL DEFAULT '',
		CONSTRAINT fk_product_colors_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS product_sizes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		name VARCHAR(50) NOT NULL,
		CONSTRAINT fk_product_sizes_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS product_styles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		options JSON NOT NULL,
		CONSTRAINT fk_product_styles_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		image VARCHAR(1000) NOT NULL DEFAULT '',
		sort_order INT NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS collection_products (
		collection_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		PRIMARY KEY (collection_id, product_id),
		CONSTRAINT fk_collection_products_collection FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE,
		CONSTRAINT fk_collection_products_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(254) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		address TEXT NOT NULL,
		city VARCHAR(100) NOT NULL,
		postal_code VARCHAR(20) NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		delivery_charges DECIMAL(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(50) NOT NULL,
		payment_id VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL,
		INDEX idx_orders_created_at (created_at),
		CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		size VARCHAR(50) NOT NULL DEFAULT '',
		color VARCHAR(50) NOT NULL DEFAULT '',
		style VARCHAR(100) NOT NULL DEFAULT '',
		CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		CONSTRAINT fk_order_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		rating INT NOT NULL DEFAULT 5,
		comment TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_reviews_created_at (created_at),
		CONSTRAINT fk_reviews_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
}

// Migrate creates any missing tables. Unlike ad-hoc ALTER scripts, a failing
// statement aborts start-up.
func Migrate(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	log.Info("Database schema is up to date", zap.Int("statements", len(schema)))
	return nil
}
