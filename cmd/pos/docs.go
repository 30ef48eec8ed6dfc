package main

// @title POS Service API
// @version 1.0
// @description Point-of-sale service for a single counter: menu, cart, checkout, invoices and stock ledger
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/tiffin-pos
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/tiffin-pos/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @tag.name Menu
// @tag.description Menu catalog endpoints

// @tag.name Cart
// @tag.description Cart and checkout endpoints

// @tag.name Stock
// @tag.description Stock ledger endpoints

// @tag.name Invoices
// @tag.description Invoice history and sales reporting endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
