package main

import "civic-voice-be/internal/dto"

var sampleArticles = []dto.CreateArticleRequest{
	{
		Title:   "Garbage Collection Schedule",
		Content: "Garbage collection happens every Monday, Wednesday, and Friday between 6 AM and 10 AM. Please place your bins outside before 6 AM on collection days. If your collection was missed, report it through the app and our team will arrange a pickup within 24 hours.",
		Tags:    []string{"garbage", "waste", "schedule", "collection", "bins"},
	},
	{
		Title:   "Daily Water Supply Schedule",
		Content: "Municipal water supply is available from 5 AM to 9 AM and 5 PM to 9 PM daily. During summer months (April-June) there may be additional supply between 12 PM and 2 PM. In case of supply disruption, check our website or call 1916.",
		Tags:    []string{"water", "supply", "schedule", "timing", "utilities"},
	},
	{
		Title:   "Ongoing Road Construction - VIP Road",
		Content: "VIP Road is under construction from Ring Road to Pandri. Alternative routes: G.E. Road or Vidhan Sabha Road. Construction hours are 7 AM to 7 PM on weekdays. Work is paused on Sundays.",
		Tags:    []string{"roads", "construction", "traffic", "vip road", "detour"},
	},
	{
		Title:   "Emergency Contact Numbers",
		Content: "Municipal Emergency: 100, Fire Service: 101, Ambulance: 102, Water Supply Issues: 1916, Electricity Complaints: 1912, Road Maintenance: 1800-180-1551, Municipal Corporation: 0771-4019999. All emergency numbers are available 24/7.",
		Tags:    []string{"emergency", "contact", "help", "phone", "support"},
	},
	{
		Title:   "Property Tax Payment Information",
		Content: "Property tax can be paid online or at any municipal office during business hours (10 AM - 5 PM, Monday-Friday). The annual payment deadline is March 31st. Payments before December 31st get a 5% discount. Late payments are charged 2% per month after the deadline.",
		Tags:    []string{"tax", "property", "payment", "finance", "deadline"},
	},
	{
		Title:   "How to Report Streetlight Issues",
		Content: "To report a broken or dim streetlight, note the pole number printed on the pole and submit a report through this app with a photo. Our team inspects within 48 hours and repairs are typically completed within 5-7 working days. For urgent safety concerns, call 1912.",
		Tags:    []string{"streetlight", "infrastructure", "repair", "electricity", "safety"},
	},
	{
		Title:   "Public Parks Maintenance Schedule",
		Content: "All municipal parks are cleaned daily between 6 AM and 8 AM. Major maintenance happens on the first Sunday of each month and parks may be partially closed during that time. Lakeside parks have extended hours (5 AM - 9 PM).",
		Tags:    []string{"parks", "maintenance", "schedule", "recreation", "public spaces"},
	},
	{
		Title:   "Pothole Repair Process and Timeline",
		Content: "Reported potholes are verified within 24 hours and given a priority. High priority repairs are fixed within 3 days, medium within 7 days and low within 15 days. During monsoon season repairs may take longer. Track your report status in the app.",
		Tags:    []string{"pothole", "roads", "repair", "timeline", "maintenance"},
	},
	{
		Title:   "Monsoon Season Services and Precautions",
		Content: "During monsoon (June-September) extra drainage cleaning teams are deployed and the helpline 1800-180-1551 is active 24/7. Report waterlogging immediately and avoid low-lying areas during heavy rain.",
		Tags:    []string{"monsoon", "weather", "emergency", "drainage", "waterlogging", "rain"},
	},
	{
		Title:   "Birth and Death Certificate Applications",
		Content: "Apply online or visit your nearest municipal office with hospital records, ID proof of parents and address proof. Processing takes 7-10 working days online and 15 days offline. Certificates must be registered within 21 days of birth or death.",
		Tags:    []string{"certificate", "birth", "death", "documents", "registration", "government"},
	},
}
