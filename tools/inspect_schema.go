package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/fastighet-admin/internal/database"
	"gorm.io/gorm"
)

// Prints the tables and columns AutoMigrate creates for the hierarchy, user and link models.
// Run with: go run tools/inspect_schema.go
func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		log.Fatal(err)
	}

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			log.Fatal(err)
		}
		for _, col := range columns {
			nullable, _ := col.Nullable()
			pk, _ := col.PrimaryKey()
			fmt.Printf("  %-14s %-12s null=%-5t pk=%t\n", col.Name(), col.DatabaseTypeName(), nullable, pk)
		}

		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&ddl)
		fmt.Println(ddl)
	}
}
