package entities

// DefaultServices returns the services a fresh site is seeded with.
func DefaultServices() []Service {
	return []Service{
		{
			ID:          1,
			Icon:        "🤖",
			Title:       "Custom AI Chatbots",
			Description: "Intelligent conversational AI solutions designed specifically for your business needs. Enhance customer engagement and automate support with state-of-the-art chatbot technology.",
		},
		{
			ID:          2,
			Icon:        "⚡",
			Title:       "AI Workflow Integration",
			Description: "Seamlessly integrate AI into your existing workflows. Boost productivity and efficiency by automating repetitive tasks and enhancing decision-making processes.",
		},
		{
			ID:          3,
			Icon:        "📈",
			Title:       "Trading Setup Solutions",
			Description: "Custom stock market trading setups tailored for specific niches. Advanced algorithms and analytics to give you a competitive edge in the market.",
		},
		{
			ID:          4,
			Icon:        "🛒",
			Title:       "E-commerce Websites",
			Description: "Full-featured online stores designed to convert visitors into customers. Responsive, secure, and optimized for maximum sales performance.",
		},
		{
			ID:          5,
			Icon:        "💻",
			Title:       "Desktop Applications",
			Description: "Powerful desktop software solutions for Windows, Mac, and Linux. Built with performance, security, and user experience in mind.",
		},
		{
			ID:          6,
			Icon:        "🌐",
			Title:       "Web-Based Solutions",
			Description: "Modern, scalable web applications that work seamlessly across all devices. From enterprise systems to consumer platforms, we build it all.",
		},
	}
}

// DefaultBlogs returns the blog posts a fresh site is seeded with.
func DefaultBlogs() []Blog {
	return []Blog{
		{
			ID:      1,
			Title:   "The Future of AI in Business",
			Excerpt: "Exploring how artificial intelligence is transforming modern enterprises and creating new opportunities for growth.",
			Author:  "Tech Team",
			Date:    "2024-03-15",
			Image:   "🤖",
			Starred: true,
		},
		{
			ID:      2,
			Title:   "Building Scalable Web Applications",
			Excerpt: "Best practices and architectural patterns for creating web applications that can handle millions of users.",
			Author:  "Dev Team",
			Date:    "2024-03-10",
			Image:   "🌐",
			Starred: true,
		},
		{
			ID:      3,
			Title:   "E-commerce Trends 2024",
			Excerpt: "The latest trends shaping online retail and how businesses can stay ahead of the competition.",
			Author:  "Marketing Team",
			Date:    "2024-03-05",
			Image:   "🛒",
			Starred: true,
		},
	}
}
