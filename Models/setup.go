package Models

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func init() {
	// Monetary fields render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Connect opens the store and prepares the schema. MySQL is used when
// DB_HOST is set; the default is a local SQLite file, which is all a
// single-plant deployment needs.
func Connect() {
	var dialector gorm.Dialector
	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host, envOr("DB_PORT", "3306"), envOr("DB_NAME", "tracker"))
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open(envOr("DB_FILE", "tracker_2026.db"))
	}

	connection, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}
	if err := Seed(DB); err != nil {
		logrus.WithError(err).Fatal("failed to seed database")
	}
	logrus.Info("database ready")
}

// Migrate creates the schema in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&BudgetHead{},
		&ExchangeConfig{},
		&EventLogEntry{},
		&Request{},
		&LcPoTracker{},
		&IndentPurchaseRecord{},
		&IndentGoodsDetail{},
	)
}

// Seed installs the default exchange configuration and the default
// administrator account. Existing values are left alone.
func Seed(db *gorm.DB) error {
	for key, value := range defaultConfig() {
		row := ExchangeConfig{Key: key, Value: value}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&User{}).Where("role = ?", RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		admin := User{Username: "admin", Role: RoleAdministrator}
		if err := admin.SetPassword(envOr("ADMIN_PASSWORD", "admin1024098")); err != nil {
			return err
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logrus.WithField("username", admin.Username).Info("seeded default administrator")
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
