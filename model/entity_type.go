package model

// EntityType categorizes an extracted entity mention.
type EntityType string

const (
	EntityTypePerson         EntityType = "person"
	EntityTypeOrganization   EntityType = "organization"
	EntityTypeLocation       EntityType = "location"
	EntityTypeProduct        EntityType = "product"
	EntityTypeProject        EntityType = "project"
	EntityTypeTechnicalTerm  EntityType = "technical_term"
	EntityTypeJobTitle       EntityType = "job_title"
	EntityTypeSkill          EntityType = "skill"
	EntityTypeEmail          EntityType = "email"
	EntityTypeUrl            EntityType = "url"
	EntityTypePhoneNumber    EntityType = "phone_number"
	EntityTypeDateTime       EntityType = "date_time"
	EntityTypeMoney          EntityType = "money"
	EntityTypePercentage     EntityType = "percentage"
	EntityTypeDatabaseTable  EntityType = "database_table"
	EntityTypeDatabaseColumn EntityType = "database_column"
	EntityTypeCodeSnippet    EntityType = "code_snippet"
	EntityTypeApi            EntityType = "api"
	EntityTypeCustom         EntityType = "custom"
)

// AllEntityTypes lists every known entity type.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypePerson,
		EntityTypeOrganization,
		EntityTypeLocation,
		EntityTypeProduct,
		EntityTypeProject,
		EntityTypeTechnicalTerm,
		EntityTypeJobTitle,
		EntityTypeSkill,
		EntityTypeEmail,
		EntityTypeUrl,
		EntityTypePhoneNumber,
		EntityTypeDateTime,
		EntityTypeMoney,
		EntityTypePercentage,
		EntityTypeDatabaseTable,
		EntityTypeDatabaseColumn,
		EntityTypeCodeSnippet,
		EntityTypeApi,
		EntityTypeCustom,
	}
}
