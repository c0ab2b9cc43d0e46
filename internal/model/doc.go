package model

// Package model defines the domain data structures shared by the form and the
// download worker: the download request, the closed set of format choices,
// progress samples, and the two-variant terminal result.
