package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/migration-sizer/api/v1"
	"github.com/kubev2v/migration-sizer/internal/handlers"
	"github.com/kubev2v/migration-sizer/internal/models"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

var _ = Describe("VMs Handlers", func() {
	var (
		mockVM *MockVMService
		router *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockVM = &MockVMService{}
		handler := handlers.New(&MockCatalog{}, &MockInventoryService{}, mockVM, &MockSizingService{}, sizing.DefaultSizingConfig())
		router = gin.New()
		handler.RegisterHandlers(router)
	})

	Describe("GetVMs", func() {
		It("should return empty list when no VMs", func() {
			req := httptest.NewRequest(http.MethodGet, "/vms", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response v1.VMListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Vms).To(HaveLen(0))
			Expect(response.Total).To(Equal(0))
			Expect(response.Page).To(Equal(1))
			Expect(response.PageCount).To(Equal(1))
		})

		It("should return list of VMs with eligibility", func() {
			mockVM.ListResult = []models.VM{
				{ID: "vm-1", Name: "VM 1", Cluster: "cluster-1", CPUs: 2, MemoryMB: 2048, PowerState: "poweredOn"},
				{ID: "vm-2", Name: "VM 2", Cluster: "cluster-1", CPUs: 4, MemoryMB: 4096, PowerState: "poweredOff"},
			}
			mockVM.ListTotal = 2

			req := httptest.NewRequest(http.MethodGet, "/vms", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response v1.VMListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Vms).To(HaveLen(2))
			Expect(response.Total).To(Equal(2))
			Expect(response.Vms[0].Id).To(Equal("vm-1"))
			Expect(response.Vms[0].Eligible).To(BeTrue())
			Expect(response.Vms[1].Eligible).To(BeFalse())
		})

		It("should handle pagination parameters", func() {
			mockVM.ListTotal = 50

			req := httptest.NewRequest(http.MethodGet, "/vms?page=2&pageSize=10", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockVM.LastListParams.Offset).To(Equal(uint64(10)))
			Expect(mockVM.LastListParams.Limit).To(Equal(uint64(10)))

			var response v1.VMListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.PageCount).To(Equal(5))
		})

		It("should limit page size to max", func() {
			req := httptest.NewRequest(http.MethodGet, "/vms?pageSize=200", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockVM.LastListParams.Limit).To(Equal(uint64(100)))
		})

		It("should forward filters to the service", func() {
			req := httptest.NewRequest(http.MethodGet, "/vms?cluster=a&cluster=b&eligible=true&scope=cpus%20%3E%202", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockVM.LastListParams.Clusters).To(Equal([]string{"a", "b"}))
			Expect(mockVM.LastListParams.EligibleOnly).To(BeTrue())
			Expect(mockVM.LastListParams.Scope).To(Equal("cpus > 2"))
		})

		It("should return 400 for an invalid scope", func() {
			mockVM.ListError = srvErrors.NewInvalidFilterError("cpus >", errors.New("unexpected end"))

			req := httptest.NewRequest(http.MethodGet, "/vms?scope=cpus%20%3E", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a non boolean eligible flag", func() {
			req := httptest.NewRequest(http.MethodGet, "/vms?eligible=maybe", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 500 when the service fails", func() {
			mockVM.ListError = errors.New("database error")

			req := httptest.NewRequest(http.MethodGet, "/vms", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("failed to list VMs"))
		})
	})

	Describe("SetExclusions", func() {
		It("should exclude the given vms", func() {
			mockVM.ExcludeChanged = 2

			body := `{"ids": ["vm-1", "vm-2"], "excluded": true}`
			req := httptest.NewRequest(http.MethodPatch, "/vms/exclusions", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockVM.LastIDs).To(Equal([]string{"vm-1", "vm-2"}))
			Expect(mockVM.LastExcluded).To(BeTrue())

			var response v1.ExclusionResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Changed).To(Equal(int64(2)))
		})

		It("should accept excluded false", func() {
			body := `{"ids": ["vm-1"], "excluded": false}`
			req := httptest.NewRequest(http.MethodPatch, "/vms/exclusions", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockVM.LastExcluded).To(BeFalse())
		})

		DescribeTable("should reject invalid bodies",
			func(body string) {
				req := httptest.NewRequest(http.MethodPatch, "/vms/exclusions", strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()

				router.ServeHTTP(w, req)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(mockVM.LastIDs).To(BeNil())
			},
			Entry("missing excluded", `{"ids": ["vm-1"]}`),
			Entry("empty ids", `{"ids": [], "excluded": true}`),
			Entry("malformed json", `{"ids": `),
		)
	})
})
