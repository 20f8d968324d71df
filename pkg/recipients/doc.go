// Package recipients sources the ordered destination addresses for a
// warm-up batch, either from a newline-delimited local file or from an
// HTTP address-pool endpoint.
package recipients
