package endpoint

import (
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/internal/testutil"
	"github.com/datastax/table-data-apis/internal/testutil/rest"
	e "github.com/datastax/table-data-apis/rest/endpoint/v1"
	"github.com/datastax/table-data-apis/rest/models"
	"github.com/datastax/table-data-apis/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSqlite, DSN: "unused"},
		Tables: []config.TableConfig{
			{
				Name:    "items",
				Backend: config.BackendStatement,
				Template: &config.TemplateConfig{
					Body:   "SELECT {fields} FROM items i",
					Fields: "i.*",
				},
				Columns: []config.ColumnConfig{
					{Name: "id", Alias: "i"},
					{Name: "title", Alias: "i"},
					{Name: "status", Alias: "i"},
					{Name: "created_at", Alias: "i"},
				},
				Filters: []config.FilterConfig{
					{Name: "title", Operator: "contains", Columns: []string{"title"}},
				},
				PageSize: 2,
			},
			{
				Name:    "open_items",
				Backend: config.BackendComposed,
				Builder: &config.BuilderConfig{Table: "items", Alias: "e", Where: "e.status = 'open'"},
				Columns: []config.ColumnConfig{
					{Name: "title", Alias: "e"},
					{Name: "created_at", Alias: "e"},
				},
				Filters: []config.FilterConfig{
					{Name: "created_at", Operator: "GE", Columns: []string{"created_at"}},
				},
				Operations: []string{"Filter", "Sort", "Paginate"},
			},
			{
				Name:     "tasks",
				Backend:  config.BackendDocument,
				Document: &config.DocumentConfig{Store: "documents", Collection: "tasks"},
				Columns:  []config.ColumnConfig{{Name: "createdAt"}},
			},
		},
	}
}

func ids(data models.TableData) []int {
	result := make([]int, 0, len(data.Rows))
	for _, row := range data.Rows {
		result = append(result, int(row["id"].(float64)))
	}
	return result
}

var _ = Describe("DataEndpoint", func() {
	Describe("RoutesRest()", func() {
		var routes []types.Route
		var endpoint *DataEndpoint

		BeforeEach(func() {
			var err error
			cfg := NewEndpointConfigWithLogger(testConfig(), testutil.TestLogger())
			endpoint, err = cfg.NewEndpointWithDb(testutil.SetupSqliteFixture())
			Expect(err).ToNot(HaveOccurred())
			routes = endpoint.RoutesRest(rest.Prefix)

			store, ok := endpoint.DocumentStore("documents")
			Expect(ok).To(BeTrue())
			for _, createdAt := range []string{"2024-01-02", "2024-01-01", "2024-01-03"} {
				_, err := store.Insert("tasks", "task-"+createdAt, map[string]interface{}{"createdAt": createdAt})
				Expect(err).ToNot(HaveOccurred())
			}
		})

		AfterEach(func() {
			Expect(endpoint.Close()).To(Succeed())
		})

		Describe("GET /v1/tables", func() {
			It("Should list the tables", func() {
				var response []models.Table
				code := rest.ExecuteGet(routes, e.TablesPathFormat, &response)
				Expect(code).To(Equal(http.StatusOK))
				Expect(response).To(HaveLen(3))
				Expect(response[0].Name).To(Equal("items"))
				Expect(response[0].Backend).To(Equal("statement"))
				Expect(response[0].Capabilities).To(Equal([]string{"Filtering", "Sorting", "Pagination"}))
				Expect(response[0].Filters).To(Equal([]models.Filter{
					{Name: "title", Param: "title", Operator: "CONTAINS", Columns: []string{"title"}},
				}))
				Expect(response[1].Filters[0].Param).To(Equal("createdAt"))
				Expect(response[1].PageSize).To(Equal(config.DefaultPageSize))
				Expect(response[2].Capabilities).NotTo(ContainElement("Filtering"))
			})
		})

		Describe("GET /v1/tables/{tableName}", func() {
			It("Should return the first page with counts", func() {
				var response models.TableData
				code := rest.ExecuteGet(routes, e.TablePathFormat, &response, "items")
				Expect(code).To(Equal(http.StatusOK))
				Expect(response.Rows).To(HaveLen(2))
				Expect(response.Page).To(Equal(0))
				Expect(response.PageSize).To(Equal(2))
				Expect(*response.CountItems).To(Equal(len(testutil.Items)))
				Expect(*response.CountPages).To(Equal(3))
			})

			It("Should filter ignoring case and sort", func() {
				var response models.TableData
				query := url.Values{"title": {"FOO"}, "sort": {"title"}}
				code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, query, &response, "items")
				Expect(code).To(Equal(http.StatusOK))
				Expect(ids(response)).To(Equal([]int{2, 1}))
				Expect(*response.CountItems).To(Equal(2))
				Expect(*response.CountPages).To(Equal(1))
			})

			It("Should return the requested page", func() {
				var response models.TableData
				query := url.Values{"page": {"1"}, "sort": {"title"}, "direction": {"asc"}}
				rest.ExecuteGetWithQuery(routes, e.TablePathFormat, query, &response, "items")
				Expect(ids(response)).To(Equal([]int{4, 3}))
				Expect(response.Page).To(Equal(1))
			})

			It("Should return 404 when the page is out of range", func() {
				var response models.ModelError
				code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, url.Values{"page": {"4"}}, &response, "items")
				Expect(code).To(Equal(http.StatusNotFound))
				Expect(response.Description).To(Equal("page 4 is out of range [0, 3]"))
			})

			It("Should return 404 when the page is negative", func() {
				for _, table := range []string{"items", "open_items", "tasks"} {
					var response models.ModelError
					code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, url.Values{"page": {"-1"}}, &response, table)
					Expect(code).To(Equal(http.StatusNotFound), table)
					Expect(response.Description).To(HavePrefix("page -1 is out of range"), table)
				}
			})

			It("Should return 404 when table is not found", func() {
				var response models.ModelError
				code := rest.ExecuteGet(routes, e.TablePathFormat, &response, "missing")
				Expect(code).To(Equal(http.StatusNotFound))
			})

			It("Should return 400 when the request is invalid", func() {
				invalid := []url.Values{
					{"page": {"first"}},
					{"pageSize": {"0"}},
					{"sort": {"missing"}},
					{"sort": {"title"}, "direction": {"sideways"}},
				}
				for _, query := range invalid {
					var response models.ModelError
					code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, query, &response, "items")
					Expect(code).To(Equal(http.StatusBadRequest), query.Encode())
					Expect(response.Description).NotTo(BeEmpty())
				}
			})

			It("Should map query parameters to filters and columns", func() {
				var response models.TableData
				query := url.Values{"createdAt": {"2024-01-03"}, "sort": {"createdAt"}, "direction": {"DESC"}}
				code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, query, &response, "open_items")
				Expect(code).To(Equal(http.StatusOK))
				Expect(ids(response)).To(Equal([]int{4, 3}))
				Expect(response.CountItems).To(BeNil())
				Expect(response.CountPages).To(BeNil())
			})

			It("Should sort documents", func() {
				var response models.TableData
				query := url.Values{"sort": {"createdAt"}, "direction": {"desc"}}
				code := rest.ExecuteGetWithQuery(routes, e.TablePathFormat, query, &response, "tasks")
				Expect(code).To(Equal(http.StatusOK))
				Expect(response.Rows).To(HaveLen(3))
				Expect(response.Rows[0]["_id"]).To(Equal("task-2024-01-03"))
				Expect(response.Rows[2]["_id"]).To(Equal("task-2024-01-01"))
				Expect(*response.CountItems).To(Equal(3))
			})
		})
	})
})
