package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"advisorlink/backend/internal/models"
	"advisorlink/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "adduser":
		if len(os.Args) < 5 {
			fmt.Println("Usage: admin adduser <name> <email> <student|advisor|admin> [expertise...]")
			os.Exit(1)
		}
		user := &models.User{
			Name:  os.Args[2],
			Email: os.Args[3],
			Role:  os.Args[4],
		}
		for _, tag := range os.Args[5:] {
			user.Expertise = append(user.Expertise, tag)
		}
		if err := addUser(storageSvc, user); err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s created with ID %s.\n", user.Name, user.ID)
	case "appoint":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin appoint <student_id> <advisor_id> <date YYYY-MM-DD> <time HH:MM>")
			os.Exit(1)
		}
		appt := &models.Appointment{
			StudentID: os.Args[2],
			AdvisorID: os.Args[3],
			Date:      os.Args[4],
			Time:      os.Args[5],
			Status:    models.AppointmentPending,
		}
		if err := addAppointment(storageSvc, appt); err != nil {
			log.Fatalf("Error creating appointment: %v", err)
		}
		fmt.Printf("Appointment %d scheduled for %s %s.\n", appt.ID, appt.Date, appt.Time)
	case "confirm-appointment":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin confirm-appointment <appointment_id>")
			os.Exit(1)
		}
		apptID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid appointment ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := storageSvc.UpdateAppointmentStatus(uint(apptID), models.AppointmentConfirmed); err != nil {
			log.Fatalf("Error confirming appointment: %v", err)
		}
		fmt.Printf("Appointment %d has been confirmed.\n", apptID)
	case "cancel-appointment":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin cancel-appointment <appointment_id>")
			os.Exit(1)
		}
		apptID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid appointment ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := storageSvc.UpdateAppointmentStatus(uint(apptID), models.AppointmentCancelled); err != nil {
			log.Fatalf("Error cancelling appointment: %v", err)
		}
		fmt.Printf("Appointment %d has been cancelled.\n", apptID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func addUser(s storage.Storage, user *models.User) error {
	switch user.Role {
	case models.RoleStudent, models.RoleAdvisor, models.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", user.Role)
	}
	return s.SaveUser(user)
}

func addAppointment(s storage.Storage, appt *models.Appointment) error {
	// Перевіряємо формат розкладу до запису.
	if _, err := appt.StartsAt(nil); err != nil {
		return err
	}
	return s.SaveAppointment(appt)
}
