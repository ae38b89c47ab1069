package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
	"github.com/rxradar/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_medications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	dosage TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	active_ingredients TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_user_medications_user_id ON user_medications(user_id);

CREATE TABLE IF NOT EXISTS interactions (
	min_drug_name TEXT NOT NULL,
	max_drug_name TEXT NOT NULL,
	severity TEXT NOT NULL DEFAULT 'unknown',
	description TEXT NOT NULL DEFAULT 'Information not available',
	atc_group_context TEXT NOT NULL DEFAULT 'Information not available',
	min_drug_class TEXT NOT NULL DEFAULT 'Information not available',
	max_drug_class TEXT NOT NULL DEFAULT 'Information not available',
	min_mechanism_of_action TEXT NOT NULL DEFAULT 'Information not available',
	max_mechanism_of_action TEXT NOT NULL DEFAULT 'Information not available',
	min_route_of_elimination TEXT NOT NULL DEFAULT 'Information not available',
	max_route_of_elimination TEXT NOT NULL DEFAULT 'Information not available',
	min_toxicity TEXT NOT NULL DEFAULT 'Information not available',
	max_toxicity TEXT NOT NULL DEFAULT 'Information not available',
	effects_summary TEXT NOT NULL DEFAULT 'Information not available',
	PRIMARY KEY (min_drug_name, max_drug_name)
);

CREATE TABLE IF NOT EXISTS interaction_logs (
	id UUID PRIMARY KEY,
	drug1 TEXT NOT NULL,
	drug2 TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type seedInteraction struct {
	drugA, drugB   string
	severity       string
	description    string
	classA, classB string
	mechanismA     string
	mechanismB     string
	effectsSummary string
}

var seedInteractions = []seedInteraction{
	{
		drugA:          "aspirin",
		drugB:          "warfarin",
		severity:       "major",
		description:    "Aspirin may increase the anticoagulant activities of warfarin.",
		classA:         "nonsteroidal anti-inflammatory drug (NSAID)",
		classB:         "vitamin K antagonist anticoagulant",
		mechanismA:     "irreversibly inhibiting platelet cyclooxygenase",
		mechanismB:     "blocking the regeneration of active vitamin K",
		effectsSummary: "Increased risk of serious bleeding, including gastrointestinal and intracranial bleeding.",
	},
	{
		drugA:          "ibuprofen",
		drugB:          "lisinopril",
		severity:       "moderate",
		description:    "Ibuprofen may decrease the antihypertensive activities of lisinopril.",
		classA:         "nonsteroidal anti-inflammatory drug (NSAID)",
		classB:         "angiotensin-converting enzyme (ACE) inhibitor",
		mechanismA:     "inhibiting prostaglandin synthesis",
		mechanismB:     "blocking conversion of angiotensin I to angiotensin II",
		effectsSummary: "Reduced blood pressure control and a higher risk of kidney function decline.",
	},
	{
		drugA:          "calcium carbonate",
		drugB:          "lisinopril",
		severity:       "minor",
		description:    "Calcium carbonate may reduce the absorption of lisinopril when taken together.",
		classA:         "antacid and calcium supplement",
		classB:         "angiotensin-converting enzyme (ACE) inhibitor",
		mechanismA:     "neutralizing stomach acid",
		mechanismB:     "blocking conversion of angiotensin I to angiotensin II",
		effectsSummary: "Possible reduction in blood pressure lowering effect if doses are not separated.",
	},
	{
		drugA:          "clopidogrel",
		drugB:          "omeprazole",
		severity:       "major",
		description:    "Omeprazole may decrease the antiplatelet activity of clopidogrel.",
		classA:         "antiplatelet agent",
		classB:         "proton pump inhibitor",
		mechanismA:     "irreversibly blocking the P2Y12 receptor on platelets",
		mechanismB:     "inhibiting the gastric proton pump",
		effectsSummary: "Reduced protection against heart attack and stroke.",
	},
	{
		drugA:       "acetaminophen",
		drugB:       "warfarin",
		severity:    "unknown",
		description: "Regular acetaminophen use may increase the anticoagulant effect of warfarin.",
		classA:      "analgesic and antipyretic",
		classB:      "vitamin K antagonist anticoagulant",
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				user_medications,
				interaction_logs,
				interactions,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	insert := `
		INSERT INTO interactions (
			min_drug_name, max_drug_name, severity, description,
			min_drug_class, max_drug_class,
			min_mechanism_of_action, max_mechanism_of_action,
			effects_summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (min_drug_name, max_drug_name) DO NOTHING
	`

	seeded := 0
	for _, row := range seedInteractions {
		minName, maxName := entities.PairKey(row.drugA, row.drugB)

		// Keep the per-drug fields aligned with the lexicographic key.
		classMin, classMax := row.classA, row.classB
		mechMin, mechMax := row.mechanismA, row.mechanismB
		if minName != row.drugA {
			classMin, classMax = classMax, classMin
			mechMin, mechMax = mechMax, mechMin
		}

		_, err := pgClient.DB().ExecContext(ctx, insert,
			minName, maxName,
			row.severity, orNotAvailable(row.description),
			orNotAvailable(classMin), orNotAvailable(classMax),
			orNotAvailable(mechMin), orNotAvailable(mechMax),
			orNotAvailable(row.effectsSummary),
		)
		if err != nil {
			log.Fatalf("Failed to seed interaction %s/%s: %v", minName, maxName, err)
		}
		seeded++
	}

	log.Printf("Seeded %d interaction records", seeded)
}

func orNotAvailable(value string) string {
	if value == "" {
		return entities.FieldNotAvailable
	}
	return value
}
