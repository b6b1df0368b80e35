package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/credboost/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type SystemConfig struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"size:100;uniqueIndex"`
	Value string `gorm:"type:text"`
}

func (SystemConfig) TableName() string { return "system_configs" }

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	var limits []SystemConfig
	if err := db.Where("key LIKE ?", "plan_limit_%").Order("id").Find(&limits).Error; err != nil {
		fmt.Printf("Failed to read plan limits: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d plan limit entries:\n\n", len(limits))
	for _, l := range limits {
		fmt.Printf("  %s = %s\n", strings.TrimPrefix(l.Key, "plan_limit_"), l.Value)
	}

	if len(os.Args) > 1 && os.Args[1] == "--update" {
		if len(os.Args) < 3 {
			fmt.Println("\nUsage: go run scripts/update_plan_limits.go --update free=2 paid=5 ultra_premium=10")
			os.Exit(1)
		}

		fmt.Println("\n>>> Updating plan limits...")
		for _, arg := range os.Args[2:] {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) != 2 {
				fmt.Printf("Skipped malformed argument: %s\n", arg)
				continue
			}
			if _, err := strconv.Atoi(parts[1]); err != nil {
				fmt.Printf("Skipped %s: value must be an integer\n", arg)
				continue
			}
			key := "plan_limit_" + parts[0]
			result := db.Model(&SystemConfig{}).Where("key = ?", key).Update("value", parts[1])
			if result.Error != nil {
				fmt.Printf("Failed to update %s: %v\n", key, result.Error)
			} else if result.RowsAffected == 0 {
				fmt.Printf("No such plan limit: %s\n", parts[0])
			} else {
				fmt.Printf("Updated %s = %s\n", key, parts[1])
			}
		}
		fmt.Println("\n>>> Done!")
	} else {
		fmt.Println("\nTo change limits, run: go run scripts/update_plan_limits.go --update free=2 paid=5")
	}
}
