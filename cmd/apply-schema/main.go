// 스키마 적용 스크립트
//
// 사용법: go run ./cmd/apply-schema [-file internal/db/schema.sql]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hoon0510/loneatkr/internal/config"
	"github.com/hoon0510/loneatkr/internal/database"
)

func main() {
	schemaFile := flag.String("file", "internal/db/schema.sql", "적용할 스키마 파일 경로")
	flag.Parse()

	_ = godotenv.Load()

	schemaSQL, err := os.ReadFile(*schemaFile)
	if err != nil {
		log.Fatalf("스키마 파일을 읽을 수 없습니다: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(string(schemaSQL)); err != nil {
		log.Fatalf("스키마 적용 실패: %v", err)
	}

	log.Printf("스키마 적용 완료: %s", *schemaFile)
}
