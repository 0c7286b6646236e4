package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal/core/database"
	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	sessionDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/session"
	"github.com/frahmantamala/smart-recruiter/internal/session"
	"github.com/frahmantamala/smart-recruiter/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	clearData bool
	seedFile  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed HR users, jobs and applicants from a YAML fixture for development and testing purposes.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "db/seeds/seed.yml", "seed fixture file")
}

type seedFixture struct {
	HRUsers []struct {
		Email     string `yaml:"email"`
		Name      string `yaml:"name"`
		RoleTitle string `yaml:"role_title"`
		Password  string `yaml:"password"`
	} `yaml:"hr_users"`
	Jobs []struct {
		Key         string `yaml:"key"`
		Title       string `yaml:"title"`
		Department  string `yaml:"department"`
		Location    string `yaml:"location"`
		Type        string `yaml:"type"`
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
		Applicants  []struct {
			FirstName string `yaml:"first_name"`
			LastName  string `yaml:"last_name"`
			Email     string `yaml:"email"`
			Phone     string `yaml:"phone"`
			ResumeURL string `yaml:"resume_url"`
			Stage     string `yaml:"stage"`
			DaysAgo   int    `yaml:"days_ago"`
		} `yaml:"applicants"`
	} `yaml:"jobs"`
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var fixture seedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse seed file %s: %w", seedFile, err)
	}

	sqlDB, err := database.Open(cfg.Database, lg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	db, err := database.OpenGorm(sqlDB.DB, false)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if clearData {
			// children first
			for _, table := range []string{"interviews", "notifications", "history_records", "applicants", "jobs", "hr_sessions"} {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("clear %s: %w", table, err)
				}
			}
			fmt.Println("Cleared existing recruiting data")
		}

		for _, u := range fixture.HRUsers {
			hash, err := session.HashPassword(u.Password, cfg.Security.BCryptCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Email, err)
			}
			row := sessionDatamodel.HRUser{
				ID:           uuid.NewString(),
				Email:        u.Email,
				Name:         u.Name,
				PasswordHash: hash,
				IsActive:     true,
			}
			if u.RoleTitle != "" {
				title := u.RoleTitle
				row.RoleTitle = &title
			}
			res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("insert hr user %s: %w", u.Email, res.Error)
			}
			if res.RowsAffected == 0 {
				fmt.Println("hr user already exists:", u.Email)
				continue
			}
			fmt.Println("Seeded hr user:", u.Email)
		}

		now := time.Now()
		for _, j := range fixture.Jobs {
			status := j.Status
			if status == "" {
				status = "open"
			}
			jobRow := jobDatamodel.Job{
				ID:          uuid.NewString(),
				Title:       j.Title,
				Department:  optional(j.Department),
				Location:    optional(j.Location),
				Type:        optional(j.Type),
				Description: optional(j.Description),
				Status:      status,
			}
			if err := tx.Create(&jobRow).Error; err != nil {
				return fmt.Errorf("insert job %s: %w", j.Title, err)
			}

			for _, a := range j.Applicants {
				stage := a.Stage
				if stage == "" {
					stage = "applied"
				}
				row := applicantDatamodel.Applicant{
					ID:        uuid.NewString(),
					JobID:     jobRow.ID,
					FirstName: a.FirstName,
					LastName:  a.LastName,
					Email:     a.Email,
					Phone:     optional(a.Phone),
					ResumeURL: optional(a.ResumeURL),
					Stage:     stage,
					Status:    "active",
					AppliedAt: now.AddDate(0, 0, -a.DaysAgo),
					UpdatedAt: now,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("insert applicant %s: %w", a.Email, err)
				}
			}
			fmt.Printf("Seeded job %q with %d applicant(s)\n", j.Title, len(j.Applicants))
		}
		return nil
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
