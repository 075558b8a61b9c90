package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"localehub/internal/config"
	"localehub/internal/db"
	"localehub/internal/model"
	"localehub/internal/repository"
)

const (
	defaultCount = 1000
	batchSize    = 500
)

var (
	subjects = []string{"user", "order", "invoice", "profile", "dashboard", "settings", "report", "account", "session", "notification"}
	verbs    = []string{"created", "updated", "deleted", "loaded", "saved", "exported", "archived", "shared", "restored", "synced"}
	tagPool  = []string{"web", "mobile", "desktop"}

	sentences = map[string][]string{
		"en": {"Your %s was %s successfully.", "The %s could not be %s.", "Please confirm the %s before it is %s."},
		"fr": {"Votre %s a été %s avec succès.", "Le %s n'a pas pu être %s.", "Veuillez confirmer le %s avant qu'il ne soit %s."},
		"es": {"Su %s fue %s con éxito.", "El %s no pudo ser %s.", "Confirme el %s antes de que sea %s."},
	}
)

func main() {
	log.Println("starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Println("connected to database")

	if err := gormDB.AutoMigrate(&model.Translation{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	count := defaultCount
	if v := os.Getenv("SEED_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			count = parsed
		}
	}

	translations := make([]model.Translation, 0, count)
	for i := 0; i < count; i++ {
		translations = append(translations, fakeTranslation())
	}

	repo := repository.NewTranslationRepository(gormDB)
	if err := repo.CreateBatch(context.Background(), translations, batchSize); err != nil {
		log.Fatalf("failed to insert translations: %v", err)
	}

	log.Printf("seeded %d translations", count)
}

// fakeTranslation builds a factory-style record: a slugified unique key,
// en/fr/es texts and one or two platform tags.
func fakeTranslation() model.Translation {
	subject := subjects[rand.Intn(len(subjects))]
	verb := verbs[rand.Intn(len(verbs))]
	key := slug.Make(fmt.Sprintf("%s %s %s", subject, verb, uuid.NewString()[:8]))

	locales := make(model.LocaleMap, len(sentences))
	idx := rand.Intn(len(sentences["en"]))
	for locale, templates := range sentences {
		locales[locale] = fmt.Sprintf(templates[idx], subject, verb)
	}

	tags := model.TagList{tagPool[rand.Intn(len(tagPool))]}
	if rand.Intn(2) == 0 {
		for _, tag := range tagPool {
			if tag != tags[0] {
				tags = append(tags, tag)
				break
			}
		}
	}

	return model.Translation{
		Key:          key,
		Translations: locales,
		Tags:         tags,
	}
}
