// Package ingestion implements the connector directory and ingestion ports
// against a JSON/HTTP API.
//
// The connector list is read with GET <base_url><connectors_path> and is a
// JSON array of {Id, Label, Source_API_Name__c, Object_API_Name__c}. Uploads
// are sent with POST <base_url><submit_path> carrying
// {encodedCsvData, objectApiName, sourceApiName} and answered with
// {success, errorLocation}.
//
// Authentication uses golang.org/x/oauth2 (static bearer token or the client
// credentials grant). Requests are paced with golang.org/x/time/rate.
package ingestion
