package main

// @title Product Catalog API
// @version 1.0
// @description REST API for the product catalog: paginated listing, lookup, creation, replacement and deletion of products.

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
