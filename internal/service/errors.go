package service

import (
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// Composition errors
var (
	ErrPizzaNotOnMenu    = domain.Errorf(domain.ENOTFOUND, "", "There is no such pizza on the menu")
	ErrUnknownIngredient = domain.Errorf(domain.ENOTFOUND, "", "We do not have that ingredient in our inventory")
	ErrEmptyIngredients  = domain.Errorf(domain.EINVALID, "", "Please provide at least one ingredient")
	ErrInvalidIngredient = domain.Errorf(domain.EINVALID, "", "This ingredient is invalid")
)

// Basket errors
var (
	ErrBasketNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Basket not found")
	ErrPizzaNotInBasket = domain.Errorf(domain.ENOTFOUND, "", "There is no such pizza in your basket")
	ErrInvalidStoreID   = domain.Errorf(domain.EINVALID, "", "Invalid store ID. Please try again")
)

// Coupon errors
var (
	ErrMalformedCouponCode  = domain.Errorf(domain.EINVALID, "", "The coupon code must be 4 letters followed by 2 digits")
	ErrCouponNotFound       = domain.Errorf(domain.ENOTFOUND, "", "Coupon code is invalid")
	ErrCouponAlreadyApplied = domain.Errorf(domain.ECONFLICT, "", "This coupon is already applied")
	ErrCouponNotCheaper     = domain.Errorf(domain.ECONFLICT, "", "A cheaper coupon is already applied")
	ErrNoCouponApplied      = domain.Errorf(domain.ENOTFOUND, "", "You do not have any coupon applied in your basket")
)

// Pickup time errors
var (
	ErrPastPickupTime = domain.Errorf(domain.EPOLICY, "", "Pickup time is in the past; please enter a valid time")
	ErrEmptyBasket    = domain.Errorf(domain.EPOLICY, "", "Your basket is empty; add items first")
)

// Order lifecycle errors
var (
	ErrIllegalOrderID = domain.Errorf(domain.ENOTFOUND, "", "No cancellable order with that ID")
)

// Catalog mutation errors
var (
	ErrCatalogWriteForbidden = domain.Errorf(domain.EINVALID, "", "Only stores and managers can modify the catalog")
)
