// Package services implements the driving ports: the document manager
// that keeps the client-side collection consistent with backend truth,
// and the content resolver that derives viewable content per file type.
package services
