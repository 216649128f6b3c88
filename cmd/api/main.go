package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/scheduler"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
	"app/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func main() {
	//.envがあれば読む（なくてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New(cfg.GoEnv))
	defer log.Sync()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Inventory{},
		&model.StockBatch{},
		&model.Bill{},
		&model.BillItem{},
		&model.StockMovement{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	//repo
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	batchRepo := infraRepo.NewStockBatchGormRepository(gormDB)
	billRepo := infraRepo.NewBillGormRepository(gormDB)
	movementRepo := infraRepo.NewStockMovementGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	clock := &realClock{}
	idGen := &uuidGenerator{}
	hasher := auth.NewBcryptPasswordHasher()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//在庫変化の通知はログリスナーへ
	notifier := usecase.NewInventoryNotifier()
	notifier.Attach(usecase.NewStockAlertListener(log.Named("stock_alert")))

	strategy := usecase.NewExpiryPriorityStrategy(clock)

	//usecase
	saleUC := usecase.NewSaleUsecase(txManager, productRepo, inventoryRepo, strategy, notifier, clock)
	transferUC := usecase.NewTransferUsecase(txManager, strategy, notifier)
	stockUC := usecase.NewStockUsecase(txManager, productRepo, movementRepo, notifier, clock)
	reportUC := usecase.NewReportUsecase(billRepo, inventoryRepo, productRepo, batchRepo, clock)
	productUC := usecase.NewProductUsecase(productRepo)
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, hasher, issuer, clock)

	//発注点チェックの定期実行
	sched := scheduler.New(cfg.ReorderCron, reportUC, log.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	h := server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Product:  handler.NewProductHandler(productUC),
		Sale:     handler.NewSaleHandler(saleUC),
		Transfer: handler.NewTransferHandler(transferUC),
		Stock:    handler.NewStockHandler(stockUC),
		Report:   handler.NewReportHandler(reportUC),
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := server.Start(cfg, h); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
