package similarity

// stopWords are dropped before n-grams are built.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "is": {}, "in": {}, "at": {}, "on": {},
	"of": {}, "for": {}, "with": {}, "to": {}, "from": {}, "by": {}, "it": {},
	"this": {}, "that": {},
}

// defaultPhrases are technology and role phrases that count as a single term
// whenever they occur in a document, regardless of the n-gram order.
var defaultPhrases = []string{
	// data science and machine learning
	"machine learning", "deep learning", "artificial intelligence", "data science",
	"data analysis", "predictive analytics", "natural language processing", "computer vision",
	"reinforcement learning", "neural networks", "big data", "data visualization",
	"data engineering", "time series forecasting", "random forest", "support vector machines",

	// software engineering
	"web development", "full stack development", "backend development", "frontend development",
	"api design", "restful services", "microservices architecture", "cloud computing",
	"agile development", "test-driven development", "continuous integration", "devops",
	"unit testing", "containerization", "docker", "kubernetes", "distributed systems",
	"version control", "git",

	// cloud
	"aws", "azure", "google cloud platform", "serverless architecture",
	"infrastructure as code", "cloud migration",

	// security
	"cybersecurity", "network security", "penetration testing", "vulnerability assessment",
	"threat intelligence", "incident response", "firewalls", "encryption", "identity management",

	// general
	"agile methodology", "project management", "scrum", "jira", "trello",
	"software design patterns", "object-oriented programming", "system design",
	"scalability", "high availability",

	// languages
	"python", "java", "c#", "javascript", "typescript", "go", "ruby", "php",
	"rust", "scala", "swift", "kotlin",

	// storage
	"sql", "nosql", "mongodb", "postgresql", "mysql", "redis", "elasticsearch",
	"data lakes", "data warehousing",

	// tooling
	"gitlab", "github", "jenkins", "circleci", "terraform", "ansible", "puppet",
}

// DefaultPhrases returns a copy of the built-in phrase dictionary.
func DefaultPhrases() []string {
	out := make([]string, len(defaultPhrases))
	copy(out, defaultPhrases)
	return out
}
