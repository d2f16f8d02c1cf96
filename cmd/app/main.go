package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/carrierrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(gormDB, configs.AuditSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		StoreID:       goDotEnvVariable("STORE_ID"),
		AuditSchedule: goDotEnvVariable("AUDIT_SCHEDULE"),
	}
	if config.AuditSchedule == "" {
		config.AuditSchedule = "@hourly"
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// mustOpenDatabase connects through lib/pq so driver errors surface as
// *pq.Error, then hands the connection to GORM.
func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	gormDB, err := gorm.Open(
		gormpostgres.New(gormpostgres.Config{Conn: sqlDB}),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		log.Fatalf("Failed to initialize GORM: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{},
		&productrepo.ProductDTO{}, &productrepo.MovementDTO{},
		&carrierrepo.CarrierDTO{}, &carrierrepo.ZoneRateDTO{},
		&sessionrepo.SessionDTO{}, &sessionrepo.SessionOrderDTO{}, &sessionrepo.PickItemDTO{},
		&sessionrepo.DeliveryDTO{}, &sessionrepo.ReturnItemDTO{}, &sessionrepo.SettlementDTO{},
		&sessionrepo.ReservationDTO{}, &sessionrepo.CounterDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(httpadapter.ServerParams{
		StoreID: configs.StoreID,

		CreateOrderHandler:           app.CreateCreateOrderCommandHandler(),
		ChangeOrderStatusHandler:     app.CreateChangeOrderStatusCommandHandler(),
		DeleteOrderHandler:           app.CreateDeleteOrderCommandHandler(),
		CreateProductHandler:         app.CreateCreateProductCommandHandler(),
		CreateCarrierHandler:         app.CreateCreateCarrierCommandHandler(),
		CreateSessionHandler:         app.CreateCreateSessionCommandHandler(),
		RecordPickHandler:            app.CreateRecordPickCommandHandler(),
		CompletePickingHandler:       app.CreateCompletePickingCommandHandler(),
		CompletePackingHandler:       app.CreateCompletePackingCommandHandler(),
		DispatchSessionHandler:       app.CreateDispatchSessionCommandHandler(),
		ImportDeliveryResultsHandler: app.CreateImportDeliveryResultsCommandHandler(),
		ProcessSettlementHandler:     app.CreateProcessSettlementCommandHandler(),
		ResolveReturnItemHandler:     app.CreateResolveReturnItemCommandHandler(),
		CompleteReturnHandler:        app.CreateCompleteReturnSessionCommandHandler(),
		CancelSessionHandler:         app.CreateCancelSessionCommandHandler(),

		GetOrderHandler:            app.CreateGetOrderQueryHandler(),
		GetOrdersHandler:           app.CreateGetOrdersQueryHandler(),
		GetProductHandler:          app.CreateGetProductQueryHandler(),
		GetProductMovementsHandler: app.CreateGetProductMovementsQueryHandler(),
		GetSessionHandler:          app.CreateGetSessionQueryHandler(),
		GetDispatchManifestHandler: app.CreateGetDispatchManifestQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
