package main

//go:generate swag init -g cmd/cardash/main.go -o docs

// @title           Cardash API
// @version         0.1.0
// @description     Brand/model filters, slider bounds, and the price charts behind the car dashboard.
// @host            localhost:8050
// @BasePath        /
// @schemes         http
