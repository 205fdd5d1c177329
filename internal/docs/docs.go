// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "User registered and token generated"}, "400": {"description": "Invalid input"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login user", "responses": {"200": {"description": "User authenticated and token generated"}, "401": {"description": "Invalid credentials"}}}},
        "/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Get user profile", "responses": {"200": {"description": "User profile"}}}},
        "/wallet": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Get wallet", "responses": {"200": {"description": "Wallet"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Update wallet", "responses": {"200": {"description": "Updated wallet"}}}
        },
        "/wallet/deposit": {"post": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Add money", "responses": {"200": {"description": "Updated wallet"}}}},
        "/wallet/currency": {"post": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Change wallet currency", "responses": {"200": {"description": "Converted wallet"}, "400": {"description": "Unsupported currency"}}}},
        "/wallet/balance": {"get": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Get balance", "responses": {"200": {"description": "Balance and currency"}}}},
        "/wallet/progress": {"get": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Get budget progress", "responses": {"200": {"description": "Budget progress"}}}},
        "/wallet/transactions": {"get": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "List wallet transactions", "responses": {"200": {"description": "Paginated transactions"}}}},
        "/wallet/goals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "List goals", "responses": {"200": {"description": "Goals"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Add goal", "responses": {"201": {"description": "Created goal"}}}
        },
        "/wallet/goals/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["wallet"], "summary": "Remove goal", "responses": {"204": {"description": "Goal removed"}}}},
        "/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Search transactions", "responses": {"200": {"description": "Matching transactions"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Create a transaction", "responses": {"201": {"description": "Transaction created"}}}
        },
        "/transactions/totals": {"get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Income and expense totals", "responses": {"200": {"description": "Totals"}}}},
        "/transactions/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Get a transaction", "responses": {"200": {"description": "Transaction"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Edit a transaction", "responses": {"200": {"description": "Updated transaction"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete a transaction", "responses": {"204": {"description": "Transaction deleted"}}}
        },
        "/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "Categories"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Category created"}}}
        },
        "/categories/rename": {"post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Rename a category by name", "responses": {"200": {"description": "Renamed category"}}}},
        "/categories/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Get a category", "responses": {"200": {"description": "Category"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Update a category", "responses": {"200": {"description": "Updated category"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a category", "responses": {"204": {"description": "Category deleted"}}}
        },
        "/statistics": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Income and expense statistics", "responses": {"200": {"description": "Statistics"}, "400": {"description": "Invalid interval"}}}},
        "/admin/transactions/export": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["admin"], "summary": "Export all transactions", "produces": ["text/plain"], "responses": {"200": {"description": "Export file"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"},
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Budget Tracker API",
	Description:      "Budget tracker backend: a wallet ledger per user with transactions, categories, savings goals and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
