// Package hubspot implements the HubSpot OAuth handler and the CRM contacts
// connector.
//
// Contacts are listed from /crm/v3/objects/contacts, 100 per page, following
// paging.next.after. After the code exchange the access token is looked up
// once to record the portal (hub_id) the user authorised, which the
// normaliser uses to build contact URLs.
package hubspot
