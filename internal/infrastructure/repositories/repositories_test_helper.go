package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createDraftTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE compliance_drafts (
		merchant_code TEXT PRIMARY KEY,
		progress INTEGER NOT NULL DEFAULT 0,
		step_index INTEGER NOT NULL DEFAULT 0,
		legal_business_name TEXT,
		trading_name TEXT,
		business_description TEXT,
		business_category TEXT,
		projected_sales_volume TEXT,
		merchant_address TEXT,
		rc_number TEXT,
		country_code TEXT,
		incorporation_date TEXT,
		business_commencement_date TEXT,
		ownership_type TEXT,
		staff_strength INTEGER,
		number_of_locations INTEGER,
		bankrupcy BOOLEAN,
		bankrupcy_reason TEXT,
		relationship_with_acquirer BOOLEAN,
		reason_for_termination_relationsip TEXT,
		politics BOOLEAN,
		product_price_range TEXT,
		card_acceptance_type TEXT,
		website TEXT,
		account_name TEXT,
		account_number TEXT,
		account_type TEXT,
		bvn TEXT,
		bank_name TEXT,
		swift_code TEXT,
		tin TEXT,
		pci_dss_compliant BOOLEAN,
		uses_3d_secure BOOLEAN,
		data_protection_policy BOOLEAN,
		contact_email TEXT,
		dispute_email TEXT,
		support_email TEXT,
		dob TEXT,
		nationality TEXT,
		role TEXT,
		percent_of_business REAL,
		identification_type TEXT,
		identity_number TEXT,
		residential_address TEXT,
		nin TEXT,
		certificate_of_incorporation TEXT,
		status_report TEXT,
		director_id TEXT,
		utility_bill TEXT,
		tax_clearance TEXT,
		declaration_statement TEXT,
		financial_history TEXT,
		delivery_policy TEXT,
		return_credit_policy TEXT,
		prohibited_activities_declaration TEXT,
		bricks_and_mortar_agreement TEXT,
		web_merchants_agreement TEXT,
		memorandum_and_articles TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE draft_owners (
		id TEXT PRIMARY KEY,
		merchant_code TEXT NOT NULL,
		position INTEGER NOT NULL,
		first_name TEXT,
		last_name TEXT,
		mobile TEXT,
		verification_type TEXT,
		verification_number TEXT,
		occupation TEXT,
		percent_of_business REAL,
		address TEXT,
		dob TEXT,
		nationality TEXT,
		role TEXT,
		bvn TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		merchant_code TEXT PRIMARY KEY,
		merchant_name TEXT NOT NULL,
		selected BOOLEAN NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSettingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE settings (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at DATETIME
	);`)
}
