package services_test

import (
	"bytes"
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-sizer/internal/services"
	"github.com/kubev2v/migration-sizer/internal/store"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

var _ = Describe("InventoryService", func() {
	var (
		ctx         context.Context
		st          *store.Store
		db          *sql.DB
		invalidator *countingInvalidator
		srv         *services.InventoryService
	)

	BeforeEach(func() {
		ctx = context.Background()
		st, db = newTestStore(ctx)
		invalidator = &countingInvalidator{}
		srv = services.NewInventoryService(st, invalidator)
	})

	AfterEach(func() {
		db.Close()
	})

	It("should import an RVTools workbook", func() {
		// Act
		inv, err := srv.Import(ctx, "export.xlsx", rvtoolsWorkbook(inventoryFixture()))

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(inv.Source).To(Equal("export.xlsx"))
		Expect(inv.VMCount).To(Equal(6))

		vms, err := st.VM().List(ctx, store.ByIDs("vm-6"))
		Expect(err).NotTo(HaveOccurred())
		Expect(vms).To(ConsistOf(inventoryFixture()[5]))
		Expect(invalidator.calls).To(Equal(1))
	})

	It("should replace the previous import", func() {
		_, err := srv.Import(ctx, "a.xlsx", rvtoolsWorkbook(inventoryFixture()))
		Expect(err).NotTo(HaveOccurred())

		_, err = srv.Import(ctx, "b.xlsx", rvtoolsWorkbook(inventoryFixture()[:2]))
		Expect(err).NotTo(HaveOccurred())

		count, err := st.VM().Count(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))
	})

	It("should keep the stored inventory when the workbook is invalid", func() {
		// Given a previous import
		_, err := srv.Import(ctx, "a.xlsx", rvtoolsWorkbook(inventoryFixture()))
		Expect(err).NotTo(HaveOccurred())

		// When importing garbage
		_, err = srv.Import(ctx, "bad.xlsx", bytes.NewBufferString("garbage"))

		// Then the error is an import error and nothing changed
		Expect(srvErrors.IsInventoryImportError(err)).To(BeTrue())
		inv, err := srv.GetInventory(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(inv.Source).To(Equal("a.xlsx"))
		Expect(invalidator.calls).To(Equal(1))
	})

	It("should return not found before the first import", func() {
		_, err := srv.GetInventory(ctx)

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
