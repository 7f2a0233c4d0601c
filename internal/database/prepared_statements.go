package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements for the hot paths: auth lookups and the
	// approved-shop scan behind nearby search.
	stmtGetUserByEmail    *gocql.Query
	stmtGetUserByID       *gocql.Query
	stmtInsertUser        *gocql.Query
	stmtInsertUserByEmail *gocql.Query

	stmtApprovedShops *gocql.Query
	stmtGetShopByID   *gocql.Query

	preparedOnce sync.Once
)

func InitPreparedStatements() {
	preparedOnce.Do(func() {
		users, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Could not prepare user statements: %v", err)
			return
		}

		stmtGetUserByEmail = users.Query("SELECT user_id FROM users_by_email WHERE email = ?")
		stmtGetUserByID = users.Query(`SELECT name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at
			FROM users WHERE user_id = ?`)
		stmtInsertUser = users.Query(`INSERT INTO users (user_id, name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		stmtInsertUserByEmail = users.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)")

		market, err := GetMarketSession()
		if err != nil {
			log.Printf("⚠️ Could not prepare shop statements: %v", err)
			return
		}

		stmtApprovedShops = market.Query(`SELECT shop_id, owner_id, name, address, category, phone, whatsapp, latitude, longitude, banner_url, created_at, updated_at
			FROM shops_by_status WHERE status = 'approved'`)
		stmtGetShopByID = market.Query(`SELECT owner_id, name, address, category, phone, whatsapp, latitude, longitude, status, rejection_reason, banner_url, created_at, updated_at
			FROM shops WHERE shop_id = ?`)

		log.Println("✅ Prepared statements initialized")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query    { return stmtGetUserByEmail }
func GetPreparedGetUserByID() *gocql.Query       { return stmtGetUserByID }
func GetPreparedInsertUser() *gocql.Query        { return stmtInsertUser }
func GetPreparedInsertUserByEmail() *gocql.Query { return stmtInsertUserByEmail }
func GetPreparedApprovedShops() *gocql.Query     { return stmtApprovedShops }
func GetPreparedGetShopByID() *gocql.Query       { return stmtGetShopByID }
