package history_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/smart-recruiter/internal"
	historyDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/history"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	historyPostgres "github.com/frahmantamala/smart-recruiter/internal/history/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestHistory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "History Suite")
}

var _ = Describe("History Service", func() {
	var (
		service *history.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&historyDatamodel.HistoryRecord{})).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = history.NewService(historyPostgres.NewHistoryRepository(db), slogger)
		ctx = context.Background()
	})

	It("should append records and list newest first", func() {
		_, err := service.Record(ctx, history.CreateRecordRequest{Name: "Ann Lee", Email: "ann@x.com", Status: "Accepted"})
		Expect(err).NotTo(HaveOccurred())
		second, err := service.Record(ctx, history.CreateRecordRequest{Name: "Bo Chan", Email: "bo@x.com", Status: "Rejected"})
		Expect(err).NotTo(HaveOccurred())

		records, err := service.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].ID).To(Equal(second.ID))
	})

	It("should append a duplicate entry when the same decision is recorded twice", func() {
		req := history.CreateRecordRequest{Name: "Ann Lee", Email: "ann@x.com", Status: "Accepted"}
		_, _ = service.Record(ctx, req)
		_, _ = service.Record(ctx, req)

		records, _ := service.List(ctx)
		Expect(records).To(HaveLen(2))
	})

	It("should require name, email and status", func() {
		_, err := service.Record(ctx, history.CreateRecordRequest{})
		Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
	})

	It("should reject statuses outside the enum", func() {
		_, err := service.Record(ctx, history.CreateRecordRequest{Name: "A", Email: "a@x.com", Status: "Merged"})
		Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
	})

	It("should group counts by status and clear everything", func() {
		for _, st := range []string{"Accepted", "Accepted", "Deactivated"} {
			_, err := service.Record(ctx, history.CreateRecordRequest{Name: "A", Email: "a@x.com", Status: st})
			Expect(err).NotTo(HaveOccurred())
		}

		stats, err := service.Stats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(ConsistOf(
			history.StatusCount{Status: "Accepted", Count: 2},
			history.StatusCount{Status: "Deactivated", Count: 1},
		))

		n, err := service.ClearAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))

		stats, _ = service.Stats(ctx)
		Expect(stats).To(BeEmpty())
	})
})
