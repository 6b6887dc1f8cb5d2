package handler

import (
	"storefront/internal/usecase"
)

var (
	authHandler    *AuthHandler
	productHandler *ProductHandler
	cartHandler    *CartHandler
	orderHandler   *OrderHandler
	reviewHandler  *ReviewHandler
	adminHandler   *AdminHandler
	vendorHandler  *VendorHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	searchUseCase *usecase.SearchUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	productHandler = NewProductHandler(catalogUseCase, searchUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	adminHandler = NewAdminHandler(catalogUseCase)
	vendorHandler = NewVendorHandler(catalogUseCase, orderUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetVendorHandler() *VendorHandler {
	return vendorHandler
}
