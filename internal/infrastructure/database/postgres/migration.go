// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&user.Address{},

		&product.Category{},
		&product.Product{},

		&cart.Cart{},
		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_special_price ON products(special_price)",
		"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products(LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_product ON cart_items(product_id)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates default product categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []product.Category{
		{Name: "Electronics"},
		{Name: "Clothing"},
		{Name: "Books"},
		{Name: "Home & Garden"},
		{Name: "Sports & Outdoors"},
	}

	for _, category := range categories {
		var existing product.Category
		result := m.db.Where("name = ?", category.Name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			log.Printf("⏭️ Category already exists: %s", category.Name)
		}
	}

	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Username: "admin",
			Email:    "admin@example.com",
			Password: string(hashedPassword),
			IsAdmin:  true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"payments",
		"order_items",
		"orders",
		"cart_items",
		"carts",
		"products",
		"categories",
		"addresses",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}
