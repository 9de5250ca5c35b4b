package cmd

import (
	"encoding/csv"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datastax/table-data-apis/config"
	"github.com/datastax/table-data-apis/endpoint"
	"github.com/datastax/table-data-apis/log"
)

const defaultRESTPath = "/rest"
const defaultMetricsPath = "/metrics"

// Environment variables prefixed with "TABLE_API_" can override settings e.g. "TABLE_API_DATABASE_DSN"
const envVarPrefix = "table_api"

var cfgFile string
var logger log.Logger

// Flags that are stored under the database section of the configuration
var databaseFlags = map[string]string{
	"driver":      "database.driver",
	"dsn":         "database.dsn",
	"hosts":       "database.hosts",
	"username":    "database.username",
	"password":    "database.password",
	"keyspace":    "database.keyspace",
	"consistency": "database.consistency",
}

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --config [FILE] [OPTIONS]",
	Short: "REST endpoint for paginated, filtered and sorted table data",
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()
		defer endpoint.Close()

		router := createRouter()
		for _, route := range endpoint.RoutesRest(viper.GetString("rest-path")) {
			router.Handler(route.Method, route.Pattern, route.Handler)
		}
		if viper.GetBool("metrics") {
			router.Handler(http.MethodGet, viper.GetString("metrics-path"), promhttp.Handler())
		}

		listenAndServe(router, viper.GetInt("port"))
	},
}

// Execute starts the REST endpoint
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "config file with the table definitions")

	// Database flags
	flags.String("driver", config.DriverSqlite, "database driver. options: sqlite,postgres,cassandra")
	flags.String("dsn", "", "data source name for sqlite and postgres")
	flags.StringSliceP("hosts", "t", nil, "hosts for connecting to cassandra")
	flags.StringP("username", "u", "", "connect with database username")
	flags.StringP("password", "p", "", "database user's password")
	flags.String("keyspace", "", "cassandra keyspace")
	flags.String("consistency", "", "cassandra consistency level e.g. LOCAL_QUORUM")

	// Endpoint flags
	flags.Int("port", 8080, "REST endpoint port")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")
	flags.Int("default-page-size", config.DefaultPageSize, "page size of tables that do not define one")
	flags.Bool("request-logging", false, "enable request logging")
	flags.Bool("metrics", true, "expose prometheus metrics")
	flags.String("metrics-path", defaultMetricsPath, "prometheus metrics path")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" {
			return
		}
		key := flag.Name
		if databaseKey, ok := databaseFlags[flag.Name]; ok {
			key = databaseKey
		} else if flag.Name == "default-page-size" {
			key = "defaultPageSize"
		}
		_ = viper.BindPFlag(key, flags.Lookup(flag.Name))
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	cfg.Database.Hosts = getStringSlice("database.hosts")

	endpoint, err := endpoint.NewEndpointConfigWithLogger(cfg, logger).
		WithMetrics(viper.GetBool("metrics")).
		NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			logger.Fatal("unable to read config file",
				"file", cfgFile,
				"error", err)
		}
		logger.Info("using config file",
			"file", viper.ConfigFileUsed())
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Method", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int) {
	logger.Info("server listening",
		"port", port)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		for _, part := range split {
			if part != "" { // Don't add empty values
				result = append(result, part)
			}
		}
	}
	return result, nil
}
