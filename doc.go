// Package main provides the entry point of Dreamboard, a crowdfunding board for dreams.
// It runs a Fiber web server with a JSON API under /api and a server rendered listing page.
// Dreams, uploaded images and wallet users are persisted with gorm on MySQL, PostgreSQL or SQLite,
// images can alternatively be kept in an S3 compatible bucket.
package main
