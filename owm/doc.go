// Package owm is a client for the OpenWeatherMap API.
//
// It covers current weather and 5 day / 3 hour forecast lookups (by city id,
// city name, coordinates or zip code), geographic box/circle searches, UV
// index, air pollution and the bulk city index.
//
// Responses are passed through as decoded JSON (Payload); the package does
// not model the weather domain. Failures are classified into a closed set of
// error kinds carrying the HTTP status and the provider message.
//
// See https://openweathermap.org/api for the upstream documentation.
package owm
