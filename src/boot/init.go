package boot

import (
	"eticket/src/common"
	"eticket/src/config"
	"eticket/src/db"
	"eticket/src/lib"
	"eticket/src/models"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ticket{},
		&models.PaymentVerification{},
		&models.PointTransaction{},
		&models.CheckInLog{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the background scheduler with the expiry sweep that
// releases inventory held by unpaid orders past their payment window.
func InitScheduler() {
	jobID, err := lib.CreateCronJob(common.SweepExpiredOrders, config.EXPIRY_SWEEP_INTERVAL)
	if err != nil {
		log.Printf("Error scheduling expiry sweep: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
	log.Printf("expiry sweep scheduled: %s\n", *jobID)
}
