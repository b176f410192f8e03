// Package hubspot normalises HubSpot CRM contact objects into domain items.
package hubspot
