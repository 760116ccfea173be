// Package billing exposes the purchase, catalog, eligibility, and
// entitlement surfaces over HTTP for hosting shells that talk to the
// billing layer through a local endpoint instead of direct calls.
//
// Router returns a chi router that mounts only the services provided;
// every section is optional.
package billing
