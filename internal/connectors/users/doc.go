// Package users provides a connector that indexes active directory users
// as documents of source "usr".
//
// Personal data is limited to the display name and profile URL. The content
// column carries a hash of the identity fields so that a rename is detected
// without storing the raw values.
package users
