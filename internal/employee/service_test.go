package employee_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/smart-recruiter/internal"
	employeeDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/employee"
	"github.com/frahmantamala/smart-recruiter/internal/employee"
	employeePostgres "github.com/frahmantamala/smart-recruiter/internal/employee/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

type MockHistory struct {
	records   []history.CreateRecordRequest
	failError error
}

func (m *MockHistory) Record(_ context.Context, req history.CreateRecordRequest) (*history.Record, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	m.records = append(m.records, req)
	return &history.Record{ID: "h1", Name: req.Name, Email: req.Email, Status: history.Status(req.Status)}, nil
}

var _ = Describe("Employee Service", func() {
	var (
		db      *gorm.DB
		hist    *MockHistory
		service *employee.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		hist = &MockHistory{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(employeePostgres.NewEmployeeRepository(db), hist, slogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should default status and hired date", func() {
			e, err := service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann Lee", Email: "ann@x.com"})

			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(employee.StatusActive))
			Expect(e.HiredDate).NotTo(BeZero())
		})

		It("should reject a second employee with the same email", func() {
			_, err := service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann Lee", Email: "ann@x.com"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann L.", Email: "ann@x.com"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Message).To(ContainSubstring("already exists"))
		})

		It("should require name and email", func() {
			_, err := service.Create(ctx, employee.CreateEmployeeRequest{})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("should parse a plain hired date", func() {
			date := "2025-01-01"
			e, err := service.Create(ctx, employee.CreateEmployeeRequest{Name: "A", Email: "a@x.com", HiredDate: &date})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.HiredDate.Format("2006-01-02")).To(Equal("2025-01-01"))
		})
	})

	Describe("Update", func() {
		It("should change only provided fields", func() {
			e, _ := service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann Lee", Email: "ann@x.com"})
			dept := "Platform"

			updated, err := service.Update(ctx, e.ID, employee.UpdateEmployeeRequest{Department: &dept})

			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Department).To(Equal("Platform"))
			Expect(updated.Name).To(Equal("Ann Lee"))
		})

		It("should return not found for a missing employee", func() {
			_, err := service.Update(ctx, "ghost", employee.UpdateEmployeeRequest{})
			Expect(errors.Is(err, employee.ErrEmployeeNotFound)).To(BeTrue())
		})
	})

	Describe("Deactivate", func() {
		It("should write history before removing the employee", func() {
			e, _ := service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann Lee", Email: "ann@x.com"})

			Expect(service.Deactivate(ctx, e.ID, "Contract ended")).To(Succeed())

			Expect(hist.records).To(HaveLen(1))
			Expect(hist.records[0].Status).To(Equal("Deactivated"))
			Expect(*hist.records[0].Reason).To(Equal("Contract ended"))
			list, _ := service.List(ctx)
			Expect(list).To(BeEmpty())
		})

		It("should keep the employee when history cannot be written", func() {
			e, _ := service.Create(ctx, employee.CreateEmployeeRequest{Name: "Ann Lee", Email: "ann@x.com"})
			hist.failError = errors.New("db down")

			Expect(service.Deactivate(ctx, e.ID, "")).NotTo(Succeed())

			list, _ := service.List(ctx)
			Expect(list).To(HaveLen(1))
		})

		It("should return not found for a missing employee", func() {
			err := service.Deactivate(ctx, "ghost", "")
			Expect(errors.Is(err, employee.ErrEmployeeNotFound)).To(BeTrue())
			Expect(hist.records).To(BeEmpty())
		})
	})
})
