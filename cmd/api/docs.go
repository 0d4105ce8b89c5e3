package main

// @title Nearby Places API
// @version 1.0
// @description Finds points of interest around a place name or coordinate, enriched with Wikipedia summaries.
// @BasePath /
// @schemes http https
