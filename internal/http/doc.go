// Package http provides HTTP handlers and middleware for the space booking API.
//
// The router exposes the following endpoints:
//   - POST /auth/signup: registers a client. Body: {"name","email","password"}.
//     Response: {"token","username","email"}.
//   - POST /auth/signin: authenticates a client with {"email","password"} and
//     returns the same payload as signup.
//   - POST /auth/signout: revokes the bearer credential extracted from the
//     Authorization header. Subsequent requests with the same token are
//     rejected with 401.
//   - GET /bookings/unavailableDates: returns one {"startDate","endDate"} pair
//     per stored booking, for the calendar frontend to disable.
//   - GET /bookings/getAllBookings, GET /bookings/getClientBookings,
//     POST /bookings/newBooking, GET /bookings/getBooking/{id},
//     PUT /bookings/updateBooking/{id}, DELETE /bookings/deleteBooking/{id}:
//     booking management endpoints exchanging the `bookingDTO` payload defined
//     in booking_handler.go. Creation and update refuse intervals overlapping
//     an existing booking.
//   - GET /users, POST /users, GET /users/{id}, PUT /users/{id},
//     DELETE /users/{id}: account management endpoints exchanging the
//     `clientDTO` payload defined in user_handler.go. Listing accepts `page`
//     and `keyword` query parameters.
//
// All /bookings and /users endpoints require a valid bearer credential; the
// RequireSession middleware resolves it to a principal before the handler
// runs. Request/response DTOs live alongside their respective handlers so
// tests and documentation share the same ground truth.
package http
