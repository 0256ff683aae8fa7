// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package api provides the HTTP surface of Garderobe using the Chi router.
//
// Routes:
//
//	POST   /api/v1/outfits/recommend   compose an outfit
//	POST   /api/v1/feedback            record an outfit interaction
//	GET    /api/v1/feedback            list a user's interactions
//	GET    /api/v1/wardrobe/items      list garments
//	POST   /api/v1/wardrobe/items      add a garment
//	GET    /api/v1/wardrobe/items/{id} fetch a garment
//	PUT    /api/v1/wardrobe/items/{id} update a garment
//	DELETE /api/v1/wardrobe/items/{id} remove a garment
//	GET    /health                     liveness and readiness
//	GET    /metrics                    Prometheus metrics
//
// All endpoints respond with the models.APIResponse envelope. Request
// validation failures return 400, a request no outfit can satisfy returns
// 422 with the collected violations.
package api
