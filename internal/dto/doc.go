// Package dto contains the Data Transfer Objects exchanged with the HTTP API.
//
// Request types (CreateMatterRequest, CreateDocumentRequest,
// UpdateRevisionRequest) are parsed from request bodies; response types are
// built from domain models through factory constructors that refuse invalid
// data.
//
// Every DTO implements validation.Validatable. Validate runs a staged
// pipeline and collects failures instead of stopping at the first broken
// rule:
//
//  1. core-field checks: declarative `validate:` struct tags
//  2. business rules: registries and bounds the tags cannot express
//  3. cross-property checks: consistency between fields, such as MIME type
//     against extension or modification date against creation date
//  4. collection checks: owned collections, element by element
//  5. custom rules: everything left over
//
// Stages after the first guard on zero-valued operands, so a missing
// required field is reported exactly once.
package dto
