package main

import (
	"log"
	"os"

	"pulse/internal/db"
	"pulse/internal/services"
	"pulse/internal/utils"

	"github.com/joho/godotenv"
)

// 建表迁移入口：加载环境变量、连库建表并预热屏蔽词表。
// 对外服务的传输层由部署方自行包装，这里不启动。
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	utils.InitLogger(os.Getenv("LOG_LEVEL"))
	defer utils.Logger.Sync()

	// Initialize Database (runs AutoMigrate)
	db.Init()

	// 屏蔽词表启动时加载一次，路径不对就尽早暴露
	path := os.Getenv("PROFANITY_LIST")
	if path == "" {
		path = "profanity_list.csv"
	}
	if _, err := services.LoadProfanityList(path); err != nil {
		log.Fatalf("Failed to load profanity list %s: %v", path, err)
	}
	log.Println("Profanity list loaded")

	log.Println("Migration completed")
}
