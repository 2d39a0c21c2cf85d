// Package timezone pins wall-clock time to the zone configured in APP_TIMEZONE.
//
// Payment deadlines and reminder times are instants and stay as they are. Stay
// dates are calendar days, so "today" must be read in the property's zone before
// it is compared with a check-in date: Today does that.
package timezone
