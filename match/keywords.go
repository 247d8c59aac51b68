package match

// Keyword tables for role detection. Entries must be lower case.
var (
	fullstackKeywords = []string{
		"full stack", "full-stack", "react", "angular", "vue", "spring boot",
		"node", "express", "typescript", "javascript", "java", "frontend",
		"backend", "web developer", "software engineer", "developer",
	}

	devopsKeywords = []string{
		"devops", "sre", "site reliability", "terraform", "ansible", "jenkins",
		"kubernetes", "eks", "helm", "argo", "ci/cd", "docker", "infrastructure",
		"platform engineer", "cloud engineer", "aws", "azure", "gcp",
	}
)

// skillVocabulary is the fixed set of technology tokens the extractor
// recognizes. Entries must be lower case.
var skillVocabulary = []string{
	"java", "python", "javascript", "typescript", "react", "angular", "vue",
	"spring boot", "node.js", "express", "postgresql", "mongodb", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git",
	"hibernate", "junit", "jdbc", "html", "css", "bootstrap",
}
