// Package main provides a tool to seed the database with a demo lineage.
//
// This creates a small multi-generation family with unions, links, death
// anniversary events, and media references, then runs a tier sweep and a
// policy audit over the result.
//
// Usage:
//
//	DB_PATH=~/GiaPha/data/db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/service"
	"github.com/giaphaapp/giapha-server/internal/store"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/GiaPha/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	engine := policy.New(policy.DefaultConfig())

	persons := service.NewPersonService(s, engine, nil)
	family := service.NewFamilyService(s, nil)
	audit := service.NewAuditService(s, engine, nil)

	intPtr := func(v int) *int { return &v }

	// Generation 1: the founding couple, long deceased, public record.
	founder, err := persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   "Nguyễn Văn Khởi",
		Generation: 1,
		Living:     false,
		BirthDate:  "1890",
		DeathDate:  "1962",
		Biography:  "Thủy tổ dòng họ, lập nghiệp tại làng Đông Sơn.",
		Tier:       intPtr(int(domain.TierPublic)),
	})
	if err != nil {
		log.Fatalf("Failed to create founder: %v", err)
	}

	founderWife, err := persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   "Trần Thị Lụa",
		Generation: 1,
		Living:     false,
		BirthDate:  "1895",
		DeathDate:  "1970",
		Tier:       intPtr(int(domain.TierPublic)),
	})
	if err != nil {
		log.Fatalf("Failed to create founder's wife: %v", err)
	}

	// Generation 2: one deceased son, public.
	son, err := persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   "Nguyễn Văn Thành",
		Generation: 2,
		Branch:     1,
		Living:     false,
		BirthDate:  "1920",
		DeathDate:  "1998",
		Tier:       intPtr(int(domain.TierPublic)),
	})
	if err != nil {
		log.Fatalf("Failed to create son: %v", err)
	}

	// Generation 3: living members. One carries contact data, so the
	// creation-time rule keeps the record off the public tier.
	grandson, err := persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   "Nguyễn Văn Minh",
		Generation: 3,
		Branch:     1,
		Living:     true,
		BirthDate:  "1955",
		Contact: domain.ContactBundle{
			Phone:   "+84 912 345 678",
			Email:   "minh.nguyen@example.com",
			Address: "Thôn Đông, xã Đông Sơn",
		},
		Tier: intPtr(int(domain.TierPublic)),
	})
	if err != nil {
		log.Fatalf("Failed to create grandson: %v", err)
	}
	fmt.Printf("Created %s with contact data, assigned tier %d\n", grandson.FullName, grandson.Tier)

	granddaughter, err := persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   "Nguyễn Thị Hương",
		Generation: 3,
		Branch:     1,
		Living:     true,
		BirthDate:  "1958",
		Tier:       intPtr(int(domain.TierPrivate)),
		Notes:      "Yêu cầu giữ kín thông tin.",
	})
	if err != nil {
		log.Fatalf("Failed to create granddaughter: %v", err)
	}

	// Family structure.
	union, err := family.CreateUnion(ctx, service.CreateUnionRequest{
		PartnerIDs: []string{founder.ID, founderWife.ID},
		StartDate:  "1915",
	})
	if err != nil {
		log.Fatalf("Failed to create union: %v", err)
	}

	if _, err := family.CreateLink(ctx, service.CreateLinkRequest{
		UnionID: union.ID,
		ChildID: son.ID,
		Order:   1,
	}); err != nil {
		log.Fatalf("Failed to create link: %v", err)
	}

	// Death anniversary of the founder, observed by the lunar calendar.
	if _, err := family.CreateEvent(ctx, service.CreateEventRequest{
		Title:     "Giỗ cụ Nguyễn Văn Khởi",
		PersonID:  founder.ID,
		Recurring: true,
		Lunar:     true,
		Month:     3,
		Day:       10,
	}); err != nil {
		log.Fatalf("Failed to create anniversary event: %v", err)
	}

	// A detached clan-wide event with no person attachment.
	if _, err := family.CreateEvent(ctx, service.CreateEventRequest{
		Title:     "Họp họ đầu xuân",
		Recurring: true,
		Lunar:     true,
		Month:     1,
		Day:       15,
	}); err != nil {
		log.Fatalf("Failed to create clan event: %v", err)
	}

	if _, err := family.CreateMedia(ctx, service.CreateMediaRequest{
		PersonID:    founder.ID,
		Path:        "photos/cu-khoi-chan-dung.jpg",
		ContentType: "image/jpeg",
		Caption:     "Chân dung cụ Khởi",
	}); err != nil {
		log.Fatalf("Failed to create media: %v", err)
	}

	fmt.Printf("Seeded 5 persons (including %s), 1 union, 1 link, 2 events, 1 media asset\n", granddaughter.FullName)

	// Sweep and audit the seeded corpus.
	sweep, err := audit.Sweep(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	fmt.Printf("Sweep: %d record(s) tightened (policy version %d)\n", sweep.Changed, sweep.PolicyVersion)

	report, err := audit.Audit(ctx)
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}
	fmt.Printf("Audit: %d records x %d actors, %d violation(s)\n", report.Records, report.Actors, len(report.Violations))
	for _, v := range report.Violations {
		fmt.Printf("  VIOLATION: actor=%s record=%s reason=%s\n", v.Actor, v.RecordID, v.Reason)
	}
}
