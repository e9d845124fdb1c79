// 초기 관리자 계정 생성/갱신 스크립트
//
// 사용법: go run ./cmd/create-admin -username admin -password <비밀번호>
// 이미 존재하는 계정이면 비밀번호를 새 해시로 교체한다.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hoon0510/loneatkr/internal/config"
	"github.com/hoon0510/loneatkr/internal/database"
	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/repository"
	"github.com/hoon0510/loneatkr/internal/service"
)

func main() {
	username := flag.String("username", "admin", "관리자 사용자명 (영문 소문자/숫자/언더스코어, 3~50자)")
	password := flag.String("password", "", "관리자 비밀번호")
	flag.Parse()

	_ = godotenv.Load()

	if *password == "" {
		log.Fatal("비밀번호를 지정해주세요: -password <비밀번호>")
	}
	if !domain.IsValidUsername(*username) {
		log.Fatal("사용자명은 영문 소문자, 숫자, 언더스코어만 사용할 수 있습니다 (3~50자)")
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}
	defer db.Close()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("비밀번호 해싱 실패: %v", err)
	}

	admins := repository.NewPostgresAdminsRepository(db)
	admin, err := admins.Upsert(context.Background(), *username, hash)
	if err != nil {
		log.Fatalf("관리자 계정 생성 실패: %v", err)
	}

	fmt.Printf("관리자 계정이 준비되었습니다.\n")
	fmt.Printf("  사용자명: %s\n", admin.Username)
	fmt.Printf("  ID: %s\n", admin.ID)
	fmt.Println("프로덕션 환경에서는 강력한 비밀번호를 사용하세요.")
	os.Exit(0)
}
