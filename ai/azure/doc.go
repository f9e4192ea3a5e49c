// Package azure implements the ai service interfaces against Azure OpenAI
// deployments, addressed by deployment name via the AZURE_API_BASE endpoint.
package azure
