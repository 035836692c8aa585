package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/civicline/repcall/pkg/calllogs"
	"github.com/civicline/repcall/pkg/database"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/scripts"
)

var sampleScripts = []models.CreateScriptRequest{
	{
		Title:   "Healthcare Reform",
		Content: "Hi, my name is [NAME] and I'm a constituent from [CITY]. I'm calling to urge [REP NAME] to support affordable healthcare legislation. This issue matters deeply to my family. Thank you for your time.",
	},
	{
		Title:   "Climate Action",
		Content: "Hello, I'm [NAME], calling from zip code [ZIP]. I'd like [REP NAME] to prioritize climate legislation this session. Please pass along that constituents are watching this issue closely.",
	},
	{
		Title:   "Education Funding",
		Content: "Hi, this is [NAME] from [CITY]. I'm asking [REP NAME] to protect public school funding in the upcoming budget. Our local schools depend on it. Thanks.",
	},
}

var sampleReps = []struct {
	zip, name, position, phone, phoneType string
}{
	{"94102", "Nancy Pelosi", "Representative", "2022254965", "DC Office"},
	{"22205", "Mark Warner", "Senator", "2022242023", "DC Office"},
	{"22205", "Tim Kaine", "Senator", "2022244024", "DC Office"},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "sqlite://repcall.db"
	}

	db, err := database.NewClient(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	log.Println("🌱 Seeding sample call scripts...")
	scriptService := scripts.NewService(db.DB)
	seededScripts := seedScripts(ctx, scriptService)

	log.Println("🌱 Seeding sample representatives...")
	seedRepresentatives(ctx, db)

	log.Println("🌱 Seeding 30 days of test call logs...")
	logService := calllogs.NewService(db.DB)
	seedCallLogs(ctx, logService, seededScripts)

	log.Println("✅ Seeding complete")
}

func seedScripts(ctx context.Context, service *scripts.Service) []models.ScriptResponse {
	// Skip scripts already present so the seeder stays re-runnable.
	existing, err := service.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list scripts: %v", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, s := range existing {
		titles[s.Title] = true
	}

	seeded := append([]models.ScriptResponse(nil), existing...)
	for _, req := range sampleScripts {
		if titles[req.Title] {
			continue
		}
		created, err := service.Create(ctx, req)
		if err != nil {
			log.Printf("Failed to create script %q: %v", req.Title, err)
			continue
		}
		log.Printf("✅ Created script: %s", created.Title)
		seeded = append(seeded, *created)
	}
	return seeded
}

func seedRepresentatives(ctx context.Context, db *database.Client) {
	for _, rep := range sampleReps {
		var count int64
		first, last := splitName(rep.name)
		db.DB.WithContext(ctx).Model(&domain.Representative{}).
			Where("zip_code = ? AND first_name = ? AND last_name = ?", rep.zip, first, last).
			Count(&count)
		if count > 0 {
			continue
		}

		record := domain.Representative{
			ZipCode:   rep.zip,
			FirstName: first,
			LastName:  last,
			Position:  domain.Position(rep.position),
		}
		if err := db.DB.WithContext(ctx).Create(&record).Error; err != nil {
			log.Printf("Failed to create %s: %v", rep.name, err)
			continue
		}

		phone := domain.RepresentativePhone{
			RepresentativeID: record.ID,
			Phone:            formatPhone(rep.phone),
			PhoneType:        rep.phoneType,
		}
		if err := db.DB.WithContext(ctx).Create(&phone).Error; err != nil {
			log.Printf("Failed to create phone for %s: %v", rep.name, err)
			continue
		}
		log.Printf("✅ Created: %s (%s)", rep.name, rep.zip)
	}
}

func seedCallLogs(ctx context.Context, service *calllogs.Service, seededScripts []models.ScriptResponse) {
	outcomes := []string{"person", "voicemail", "failed"}
	created := 0

	for day := 0; day < 30; day++ {
		// 0-3 calls per day, weighted toward quiet days.
		calls := rand.Intn(4)
		for i := 0; i < calls; i++ {
			when := time.Now().AddDate(0, 0, -day).
				Add(-time.Duration(rand.Intn(8)) * time.Hour)

			rep := sampleReps[rand.Intn(len(sampleReps))]
			req := models.CreateCallLogRequest{
				RepresentativeName: rep.name,
				PhoneNumber:        formatPhone(rep.phone),
				PhoneType:          rep.phoneType,
				CallDatetime:       when.UTC().Format(time.RFC3339),
				CallOutcome:        outcomes[rand.Intn(len(outcomes))],
				CallNotes:          gofakeit.Sentence(8),
				IsTestData:         true,
			}
			if len(seededScripts) > 0 && rand.Intn(2) == 0 {
				script := seededScripts[rand.Intn(len(seededScripts))]
				req.ScriptID = &script.ID
				req.ScriptTitle = script.Title
			}

			if _, err := service.Append(ctx, req); err != nil {
				log.Printf("Failed to create call log: %v", err)
				continue
			}
			created++
		}
	}

	log.Printf("✅ Created %d test call logs", created)
}

func splitName(full string) (string, string) {
	for i := 0; i < len(full); i++ {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}

func formatPhone(digits string) string {
	if len(digits) != 10 {
		return digits
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}
