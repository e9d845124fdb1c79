// 샘플 데이터 시딩 스크립트 (개발/테스트용)
//
// 사용법: go run ./cmd/seed-data [-reset]
// -reset 지정 시 기존 맛집 데이터를 모두 삭제하고 다시 넣는다.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/hoon0510/loneatkr/internal/config"
	"github.com/hoon0510/loneatkr/internal/database"
	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/repository"
)

func floatPtr(f float64) *float64 { return &f }

var sampleRestaurants = []domain.Restaurant{
	{
		Name:    "혼밥카츠",
		Address: "서울 강남구 테헤란로 123",
		Region:  domain.Region{Sido: "서울특별시", Sigungu: "강남구"},
		Description: "1인석이 완벽하게 배치된 프리미엄 돈까스 전문점입니다. " +
			"조용한 분위기에서 혼자 식사하기 좋습니다.",
		Phone:             "02-1234-5678",
		BusinessHours:     "11:00 - 21:00 (월요일 휴무)",
		Latitude:          floatPtr(37.5065),
		Longitude:         floatPtr(127.0536),
		IsEditorCertified: true,
		EditorComment:     "1인석 배치가 완벽한 돈까스 맛집",
	},
	{
		Name:          "혼술포차",
		Address:       "서울 마포구 와우산로 45",
		Region:        domain.Region{Sido: "서울특별시", Sigungu: "마포구"},
		Description:   "바 좌석 위주의 포차. 혼자 가볍게 한잔하기 좋은 분위기입니다.",
		Phone:         "02-9876-5432",
		BusinessHours: "17:00 - 02:00",
		Latitude:      floatPtr(37.5532),
		Longitude:     floatPtr(126.9284),
	},
	{
		Name:          "다같이곱창",
		Address:       "부산 부산진구 서면로 67",
		Region:        domain.Region{Sido: "부산광역시", Sigungu: "부산진구"},
		Description:   "넓은 테이블과 단체석이 잘 갖춰진 곱창집. 모임 장소로 추천합니다.",
		BusinessHours: "16:00 - 24:00",
		IsGroupSpot:   true,
	},
}

func main() {
	reset := flag.Bool("reset", false, "기존 맛집 데이터를 모두 삭제 후 시딩")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if *reset {
		if _, err := db.ExecContext(ctx, `DELETE FROM restaurants`); err != nil {
			log.Fatalf("기존 데이터 삭제 실패: %v", err)
		}
		log.Println("기존 맛집 데이터를 삭제했습니다.")
	}

	repo := repository.NewPostgresRestaurantsRepository(db)
	for i := range sampleRestaurants {
		r := sampleRestaurants[i]
		r.Normalize()
		created, err := repo.Create(ctx, &r)
		if err != nil {
			log.Fatalf("시딩 실패 (%s): %v", r.Name, err)
		}
		log.Printf("생성: %s (%s)", created.Name, created.ID)
	}

	log.Printf("샘플 맛집 %d개 시딩 완료", len(sampleRestaurants))
}
