// @title Habitude API
// @description API for the todo and activity tracker "Habitude"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nmorel/habitude/internal/api"
	"github.com/nmorel/habitude/internal/reminder"
	"github.com/nmorel/habitude/internal/repository"
	"github.com/nmorel/habitude/internal/service"
	"github.com/nmorel/habitude/pkg/cleanup"
	"github.com/nmorel/habitude/pkg/config"
	jwtservice "github.com/nmorel/habitude/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	todosRepo := repository.NewTodosRepo(&dbCfg)
	activityRepo := repository.NewActivityRepo(&dbCfg)

	userService := service.NewUserService(usersRepo)
	todosService := service.NewTodosService(todosRepo)
	activityService := service.NewActivityService(activityRepo)
	reminderService := service.NewReminderService(usersRepo, todosRepo, reminder.NewLogSender())

	if cfg.GetBool("REMINDER_ENABLED") {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		scheduler := reminder.NewScheduler(reminderService, cfg.GetInt("REMINDER_HOUR", 9))
		go scheduler.Run(ctx)
	}

	serv := api.New(&api.ServicesList{
		UserService:     userService,
		TodosService:    todosService,
		ActivityService: activityService,
		ReminderService: reminderService,
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
