// Package docs registers the OpenAPI document for the marketing manager API
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/login": {"post": {"tags": ["Authentication"], "summary": "User Login", "responses": {"200": {"description": "Login successful"}, "401": {"description": "Invalid credentials"}, "429": {"description": "Too many failed attempts"}}}},
        "/api/auth/register": {"post": {"tags": ["Authentication"], "summary": "Register", "responses": {"201": {"description": "Account created"}, "400": {"description": "Validation error or user already exists"}}}},
        "/api/auth/refresh": {"post": {"tags": ["Authentication"], "summary": "Refresh Tokens", "responses": {"200": {"description": "New token pair"}, "401": {"description": "Invalid or expired token"}}}},
        "/api/auth/me": {"get": {"tags": ["Authentication"], "summary": "Current User", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User"}, "404": {"description": "User not found"}}}},
        "/api/auth/change-password": {"post": {"tags": ["Authentication"], "summary": "Change Password", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Password updated"}, "401": {"description": "Current password is incorrect"}}}},
        "/api/auth/logout": {"post": {"tags": ["Authentication"], "summary": "Logout", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Logged out"}}}},
        "/api/campaigns": {
            "get": {"tags": ["Campaigns"], "summary": "List Campaigns", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Campaigns"}}},
            "post": {"tags": ["Campaigns"], "summary": "Create Campaign", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Campaign"}, "400": {"description": "Validation error"}}}
        },
        "/api/campaigns/{id}": {
            "get": {"tags": ["Campaigns"], "summary": "Get Campaign", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Campaign"}, "404": {"description": "Campaign not found"}}},
            "put": {"tags": ["Campaigns"], "summary": "Update Campaign", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Campaign"}, "404": {"description": "Campaign not found"}}},
            "delete": {"tags": ["Campaigns"], "summary": "Delete Campaign", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Campaign deleted successfully"}, "404": {"description": "Campaign not found"}}}
        },
        "/api/promo-codes": {
            "get": {"tags": ["Promo Codes"], "summary": "List Promo Codes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Promo codes"}}},
            "post": {"tags": ["Promo Codes"], "summary": "Create Promo Code", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Promo code"}, "400": {"description": "Validation error or promo code already exists"}}}
        },
        "/api/promo-codes/{id}": {
            "get": {"tags": ["Promo Codes"], "summary": "Get Promo Code", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Promo code"}, "404": {"description": "Promo code not found"}}},
            "put": {"tags": ["Promo Codes"], "summary": "Update Promo Code", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Promo code"}, "404": {"description": "Promo code not found"}}},
            "delete": {"tags": ["Promo Codes"], "summary": "Delete Promo Code", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Promo code deleted successfully"}, "404": {"description": "Promo code not found"}}}
        },
        "/api/social-media": {
            "get": {"tags": ["Social Media"], "summary": "List Posts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Posts"}}},
            "post": {"tags": ["Social Media"], "summary": "Create Post", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Post"}, "400": {"description": "Validation error"}}}
        },
        "/api/social-media/{id}": {
            "get": {"tags": ["Social Media"], "summary": "Get Post", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Post"}, "404": {"description": "Post not found"}}},
            "put": {"tags": ["Social Media"], "summary": "Update Post", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Post"}, "400": {"description": "Post already published"}, "404": {"description": "Post not found"}}},
            "delete": {"tags": ["Social Media"], "summary": "Delete Post", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Post deleted successfully"}, "400": {"description": "Post already published"}, "404": {"description": "Post not found"}}}
        },
        "/api/analytics": {"get": {"tags": ["Analytics"], "summary": "Analytics Overview", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "timeRange", "in": "query", "default": "last30days"}], "responses": {"200": {"description": "Overview"}, "400": {"description": "Invalid time range"}}}},
        "/api/analytics/export": {"get": {"tags": ["Analytics"], "summary": "Export Analytics", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "timeRange", "in": "query", "default": "last30days"}], "responses": {"200": {"description": "Workbook"}, "400": {"description": "Invalid time range"}}}},
        "/api/analytics/campaigns/{campaignId}": {"get": {"tags": ["Analytics"], "summary": "Campaign Analytics", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "campaignId", "in": "path", "required": true}], "responses": {"200": {"description": "Campaign with analytics rows"}, "404": {"description": "Campaign not found"}}}},
        "/api/analytics/promo-codes/{promoCodeId}": {"get": {"tags": ["Analytics"], "summary": "Promo Code Analytics", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "promoCodeId", "in": "path", "required": true}], "responses": {"200": {"description": "Promo code with analytics rows"}, "404": {"description": "Promo code not found"}}}},
        "/api/health": {"get": {"tags": ["System"], "summary": "Health Check", "responses": {"200": {"description": "Service is healthy"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketing Manager API",
	Description:      "Campaigns, promo codes, scheduled social media posts and analytics for marketing teams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
