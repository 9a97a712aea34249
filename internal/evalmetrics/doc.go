// Package evalmetrics implements offline evaluation metrics for VMIS-kNN
// recommendations: given a ranked recommendation list and the items a
// session actually interacted with next, each metric accumulates one
// session's score via Add and reports the running average via Result.
package evalmetrics
