package i18n

var catalog = map[string]map[string]string{
	"en": {
		"app.name": "Home Relief",

		"nav.home":      "Home",
		"nav.report":    "Report damage",
		"nav.donate":    "Donate",
		"nav.volunteer": "Volunteer",
		"nav.flood_map": "Flood map",
		"nav.admin":     "Admin",
		"nav.login":     "Sign in",
		"nav.logout":    "Sign out",

		"home.title":            "Rebuilding homes together",
		"home.subtitle":         "Report flood damage, offer supplies or lend your skills to families who lost their homes.",
		"home.stats_reports":    "Damage reports",
		"home.stats_donors":     "Donation offers",
		"home.stats_volunteers": "Volunteers",
		"home.recent_reports":   "Recently verified reports",
		"home.recent_donors":    "Recently verified donors",
		"home.empty":            "Nothing verified yet.",
		"home.family":           "Family of {0}",

		"report.title":         "Report home damage",
		"report.intro":         "Tell us about the damage to your home so relief teams can prioritise support.",
		"report.submit":        "Submit report",
		"report.submitted":     "Thank you. Your report was received and will be verified shortly.",
		"report.photo_hint":    "Optional photo of the damage (JPEG, PNG, WebP, up to 5 MB).",
		"report.location_hint": "Optional coordinates. Provide both or leave both empty.",
		"report.consent":       "I confirm these details are accurate and may be shared with relief coordinators.",
		"report.photo_invalid": "The photo must be an image up to 5 MB.",

		"donate.title":     "Offer a donation",
		"donate.intro":     "Let coordinators know what you can give.",
		"donate.submit":    "Submit offer",
		"donate.submitted": "Thank you for your generosity. A coordinator will contact you.",

		"volunteer.title":     "Volunteer your skills",
		"volunteer.intro":     "Skilled hands help families move back home sooner.",
		"volunteer.submit":    "Register as volunteer",
		"volunteer.submitted": "Thank you for volunteering. We will reach out when help is needed nearby.",

		"form.fix_errors": "Please fix the highlighted fields.",
		"form.failed":     "We could not save your submission. Please try again.",
		"form.select":     "Select…",
		"form.optional":   "optional",
		"form.invalid":    "{0} has an invalid value.",

		"field.full_name":          "Full name",
		"field.phone_number":       "Phone number",
		"field.district":           "District",
		"field.ds_division":        "DS division",
		"field.gn_division":        "GN division",
		"field.damage_type":        "Damage type",
		"field.family_members":     "Family members",
		"field.essential_needs":    "Essential needs",
		"field.latitude":           "Latitude",
		"field.longitude":          "Longitude",
		"field.consent":            "Consent",
		"field.photo":              "Photo",
		"field.name":               "Name",
		"field.phone":              "Phone",
		"field.email":              "Email",
		"field.support_type":       "Support type",
		"field.description":        "Description",
		"field.skills":             "Skills",
		"field.availability_start": "Available from",
		"field.availability_end":   "Available until",
		"field.verified":           "Verified",
		"field.created_at":         "Submitted",
		"field.updated_at":         "Updated",
		"field.id":                 "ID",
		"field.photo_url":          "Photo URL",
		"field.password":           "Password",
		"field.confirm_password":   "Confirm password",
		"field.code":               "Confirmation code",

		"damage.minor":      "Minor",
		"damage.partial":    "Partial",
		"damage.severe":     "Severe",
		"damage.total_loss": "Total loss",

		"support.materials": "Materials",
		"support.money":     "Money",
		"support.labour":    "Labour",

		"skill.carpentry":  "Carpentry",
		"skill.electrical": "Electrical",
		"skill.plumbing":   "Plumbing",
		"skill.masonry":    "Masonry",
		"skill.general":    "General",

		"need.Roof sheets":         "Roof sheets",
		"need.Cement":              "Cement",
		"need.Wood":                "Wood",
		"need.Labour":              "Labour",
		"need.Bricks":              "Bricks",
		"need.Electrical supplies": "Electrical supplies",
		"need.Plumbing materials":  "Plumbing materials",
		"need.Tools":               "Tools",

		"admin.title":            "Admin dashboard",
		"admin.reports":          "Damage reports",
		"admin.donors":           "Donation offers",
		"admin.volunteers":       "Volunteer offers",
		"admin.search":           "Search",
		"admin.search_hint":      "Name, phone or district",
		"admin.filter_all":       "All",
		"admin.verified":         "Verified",
		"admin.pending":          "Pending",
		"admin.verify":           "Verify",
		"admin.unverify":         "Unverify",
		"admin.bulk_verify":      "Verify selected",
		"admin.bulk_unverify":    "Unverify selected",
		"admin.select_page":      "Select page",
		"admin.clear_selection":  "Clear selection",
		"admin.export":           "Export CSV",
		"admin.selected_count":   "{0} selected",
		"admin.page":             "Page {0} of {1}",
		"admin.total":            "{0} records",
		"admin.prev":             "Previous",
		"admin.next":             "Next",
		"admin.details":          "Details",
		"admin.view_map":         "View on map",
		"admin.summary_verified": "Verified on page",
		"admin.summary_pending":  "Pending on page",
		"admin.summary_families": "Family members",
		"admin.summary_mapped":   "With location",
		"admin.empty":            "No records match the current filters.",
		"admin.live":             "Live updates on",
		"admin.back":             "Back to list",
		"admin.apply":            "Apply",
		"admin.filter.need":      "Need",
		"admin.filter.skill":     "Skill",

		"auth.login":            "Sign in",
		"auth.register":         "Create account",
		"auth.email":            "Email",
		"auth.password":         "Password",
		"auth.confirm_password": "Confirm password",
		"auth.code":             "Confirmation code",
		"auth.confirm":          "Confirm account",
		"auth.confirm_intro":    "We emailed a confirmation code to {0}.",
		"auth.invalid":          "Invalid email or password.",
		"auth.confirmed":        "Your account is confirmed. Please sign in.",
		"auth.access_denied":    "Access Denied",
		"auth.access_body":      "You need administrator access to view this page.",
		"auth.password_short":   "Password must be at least 8 characters.",
		"auth.password_match":   "Passwords do not match.",
		"auth.email_invalid":    "Enter a valid email address.",
		"auth.account_exists":   "An account with this email already exists.",
		"auth.signup_failed":    "Unable to create account right now. Please try again.",
		"auth.confirm_failed":   "Unable to confirm account. Please try again.",
		"auth.code_mismatch":    "Invalid confirmation code. Please check the code and try again.",
		"auth.no_account":       "No account yet?",
		"auth.code_invalid":     "Enter the 6 digit code from the email.",
		"auth.code_resent":      "A new confirmation code has been sent.",
		"auth.resend":           "Send a new code",

		"flood.title": "Flood situation map",
		"flood.body":  "Live river levels and flood warnings from the Disaster Management Centre.",

		"notice.load_failed":    "Failed to load records",
		"notice.verified":       "Verified",
		"notice.unverified":     "Unverified",
		"notice.verify_failed":  "Failed to update verification",
		"notice.select_one":     "Select at least one record",
		"notice.bulk_updated":   "Updated {0} records",
		"notice.bulk_failed":    "Bulk update failed",
		"notice.export_started": "Export started",
		"notice.not_permitted":  "These records cannot be verified",

		"error.generic": "Something went wrong. Please try again.",
	},
	"si": {
		"app.name": "නිවාස සහන",

		"nav.home":      "මුල් පිටුව",
		"nav.report":    "හානි වාර්තා කරන්න",
		"nav.donate":    "පරිත්‍යාග කරන්න",
		"nav.volunteer": "ස්වේච්ඡා සේවය",
		"nav.flood_map": "ගංවතුර සිතියම",
		"nav.admin":     "පරිපාලක",
		"nav.login":     "පිවිසෙන්න",
		"nav.logout":    "පිටවන්න",

		"home.title":            "එක්ව නිවාස යළි ගොඩනඟමු",
		"home.stats_reports":    "හානි වාර්තා",
		"home.stats_donors":     "පරිත්‍යාග",
		"home.stats_volunteers": "ස්වේච්ඡා සේවකයින්",
		"home.empty":            "තවම තහවුරු කළ දෙයක් නැත.",

		"report.title":     "නිවසේ හානිය වාර්තා කරන්න",
		"report.submit":    "වාර්තාව යවන්න",
		"report.submitted": "ස්තූතියි. ඔබගේ වාර්තාව ලැබුණි.",
		"donate.title":     "පරිත්‍යාගයක් පිරිනමන්න",
		"donate.submit":    "යවන්න",
		"donate.submitted": "ඔබගේ පරිත්‍යාගශීලීත්වයට ස්තූතියි.",
		"volunteer.title":  "ඔබේ කුසලතා ලබා දෙන්න",
		"volunteer.submit": "ලියාපදිංචි වන්න",

		"form.fix_errors": "කරුණාකර සලකුණු කළ ක්ෂේත්‍ර නිවැරදි කරන්න.",

		"field.full_name":          "සම්පූර්ණ නම",
		"field.phone_number":       "දුරකථන අංකය",
		"field.district":           "දිස්ත්‍රික්කය",
		"field.ds_division":        "ප්‍රාදේශීය ලේකම් කොට්ඨාසය",
		"field.gn_division":        "ග්‍රාම නිලධාරී වසම",
		"field.damage_type":        "හානියේ ස්වභාවය",
		"field.family_members":     "පවුලේ සාමාජිකයින් ගණන",
		"field.essential_needs":    "අත්‍යවශ්‍ය අවශ්‍යතා",
		"field.name":               "නම",
		"field.phone":              "දුරකථනය",
		"field.email":              "විද්‍යුත් තැපෑල",
		"field.support_type":       "සහාය වර්ගය",
		"field.description":        "විස්තරය",
		"field.skills":             "කුසලතා",
		"field.availability_start": "ආරම්භක දිනය",
		"field.availability_end":   "අවසන් දිනය",
		"field.consent":            "එකඟතාව",

		"damage.minor":      "සුළු",
		"damage.partial":    "අර්ධ",
		"damage.severe":     "බරපතල",
		"damage.total_loss": "සම්පූර්ණ විනාශය",

		"support.materials": "ද්‍රව්‍ය",
		"support.money":     "මුදල්",
		"support.labour":    "ශ්‍රමය",

		"skill.carpentry":  "වඩු වැඩ",
		"skill.electrical": "විදුලි වැඩ",
		"skill.plumbing":   "ජලනල වැඩ",
		"skill.masonry":    "පෙදරේරු වැඩ",
		"skill.general":    "සාමාන්‍ය",

		"auth.access_denied": "ප්‍රවේශය ප්‍රතික්ෂේප විය",

		"notice.load_failed":    "වාර්තා පූරණය කිරීමට අසමත් විය",
		"notice.verified":       "තහවුරු කළා",
		"notice.unverified":     "තහවුරු කිරීම ඉවත් කළා",
		"notice.verify_failed":  "තහවුරු කිරීම යාවත්කාලීන කිරීමට අසමත් විය",
		"notice.select_one":     "අවම වශයෙන් එක් වාර්තාවක් තෝරන්න",
		"notice.bulk_updated":   "වාර්තා {0} ක් යාවත්කාලීන කළා",
		"notice.bulk_failed":    "සමූහ යාවත්කාලීන කිරීම අසමත් විය",
		"notice.export_started": "අපනයනය ආරම්භ විය",
	},
	"ta": {
		"app.name": "வீட்டு நிவாரணம்",

		"nav.home":      "முகப்பு",
		"nav.report":    "சேதத்தைப் பதிவு செய்க",
		"nav.donate":    "நன்கொடை",
		"nav.volunteer": "தன்னார்வத் தொண்டு",
		"nav.flood_map": "வெள்ள வரைபடம்",
		"nav.admin":     "நிர்வாகம்",
		"nav.login":     "உள்நுழைக",
		"nav.logout":    "வெளியேறு",

		"home.title":            "ஒன்றாக வீடுகளை மீளக் கட்டுவோம்",
		"home.stats_reports":    "சேத அறிக்கைகள்",
		"home.stats_donors":     "நன்கொடைகள்",
		"home.stats_volunteers": "தன்னார்வலர்கள்",
		"home.empty":            "இன்னும் எதுவும் சரிபார்க்கப்படவில்லை.",

		"report.title":     "வீட்டுச் சேதத்தைப் பதிவு செய்க",
		"report.submit":    "அறிக்கையைச் சமர்ப்பிக்கவும்",
		"report.submitted": "நன்றி. உங்கள் அறிக்கை பெறப்பட்டது.",
		"donate.title":     "நன்கொடை வழங்குக",
		"donate.submit":    "சமர்ப்பிக்கவும்",
		"donate.submitted": "உங்கள் தாராள மனதுக்கு நன்றி.",
		"volunteer.title":  "உங்கள் திறன்களை வழங்குக",
		"volunteer.submit": "பதிவு செய்க",

		"form.fix_errors": "குறிக்கப்பட்ட புலங்களைத் திருத்தவும்.",

		"field.full_name":          "முழுப் பெயர்",
		"field.phone_number":       "தொலைபேசி எண்",
		"field.district":           "மாவட்டம்",
		"field.ds_division":        "பிரதேச செயலகப் பிரிவு",
		"field.gn_division":        "கிராம அலுவலர் பிரிவு",
		"field.damage_type":        "சேத வகை",
		"field.family_members":     "குடும்ப உறுப்பினர்கள்",
		"field.essential_needs":    "அத்தியாவசியத் தேவைகள்",
		"field.name":               "பெயர்",
		"field.phone":              "தொலைபேசி",
		"field.email":              "மின்னஞ்சல்",
		"field.support_type":       "உதவி வகை",
		"field.description":        "விவரம்",
		"field.skills":             "திறன்கள்",
		"field.availability_start": "தொடக்க தேதி",
		"field.availability_end":   "இறுதி தேதி",
		"field.consent":            "ஒப்புதல்",

		"damage.minor":      "சிறிய",
		"damage.partial":    "பகுதி",
		"damage.severe":     "கடுமையான",
		"damage.total_loss": "முழு இழப்பு",

		"support.materials": "பொருட்கள்",
		"support.money":     "பணம்",
		"support.labour":    "உழைப்பு",

		"skill.carpentry":  "தச்சு வேலை",
		"skill.electrical": "மின்சார வேலை",
		"skill.plumbing":   "குழாய் வேலை",
		"skill.masonry":    "கொத்து வேலை",
		"skill.general":    "பொது",

		"auth.access_denied": "அணுகல் மறுக்கப்பட்டது",

		"notice.load_failed":    "பதிவுகளை ஏற்ற முடியவில்லை",
		"notice.verified":       "சரிபார்க்கப்பட்டது",
		"notice.unverified":     "சரிபார்ப்பு நீக்கப்பட்டது",
		"notice.verify_failed":  "சரிபார்ப்பைப் புதுப்பிக்க முடியவில்லை",
		"notice.select_one":     "குறைந்தது ஒரு பதிவைத் தேர்ந்தெடுக்கவும்",
		"notice.bulk_updated":   "{0} பதிவுகள் புதுப்பிக்கப்பட்டன",
		"notice.bulk_failed":    "மொத்தப் புதுப்பிப்பு தோல்வியடைந்தது",
		"notice.export_started": "ஏற்றுமதி தொடங்கியது",
	},
}

// validationCatalog holds messages per validator tag. {0} is the translated
// field label, {1} the tag parameter.
var validationCatalog = map[string]map[string]string{
	"en": {
		"required":       "{0} is required.",
		"notblank":       "{0} cannot be blank.",
		"min":            "{0} must be at least {1}.",
		"max":            "{0} must be at most {1}.",
		"oneof":          "{0} is not a valid choice.",
		"email":          "{0} must be a valid email address.",
		"latitude":       "{0} must be a valid latitude.",
		"longitude":      "{0} must be a valid longitude.",
		"datetime":       "{0} must be a date (YYYY-MM-DD).",
		"nonempty":       "Select at least one option for {0}.",
		"essential_need": "{0} contains an unknown need.",
		"latlng_pair":    "Provide both latitude and longitude, or neither.",
		"daterange":      "Availability start must be on or before the end date.",
	},
	"si": {
		"required":       "{0} අවශ්‍යයි.",
		"notblank":       "{0} හිස්ව තැබිය නොහැක.",
		"min":            "{0} අවම වශයෙන් {1} විය යුතුයි.",
		"max":            "{0} උපරිමය {1} විය යුතුයි.",
		"oneof":          "{0} වලංගු තේරීමක් නොවේ.",
		"email":          "{0} වලංගු විද්‍යුත් තැපැල් ලිපිනයක් විය යුතුයි.",
		"latitude":       "{0} වලංගු අක්ෂාංශයක් නොවේ.",
		"longitude":      "{0} වලංගු දේශාංශයක් නොවේ.",
		"datetime":       "{0} වලංගු දිනයක් නොවේ.",
		"nonempty":       "{0} සඳහා අවම වශයෙන් එකක් තෝරන්න.",
		"essential_need": "{0} හි නොදන්නා අවශ්‍යතාවක් ඇත.",
		"latlng_pair":    "අක්ෂාංශ සහ දේශාංශ දෙකම ලබා දෙන්න, නැතහොත් දෙකම හිස්ව තබන්න.",
		"daterange":      "ආරම්භක දිනය අවසන් දිනයට පෙර හෝ එදිනම විය යුතුයි.",
	},
	"ta": {
		"required":       "{0} அவசியம்.",
		"notblank":       "{0} காலியாக இருக்கக்கூடாது.",
		"min":            "{0} குறைந்தது {1} ஆக இருக்க வேண்டும்.",
		"max":            "{0} அதிகபட்சம் {1} ஆக இருக்க வேண்டும்.",
		"oneof":          "{0} செல்லுபடியான தேர்வு அல்ல.",
		"email":          "{0} செல்லுபடியான மின்னஞ்சல் முகவரியாக இருக்க வேண்டும்.",
		"latitude":       "{0} செல்லுபடியான அட்சரேகை அல்ல.",
		"longitude":      "{0} செல்லுபடியான தீர்க்கரேகை அல்ல.",
		"datetime":       "{0} செல்லுபடியான தேதி அல்ல.",
		"nonempty":       "{0} இல் குறைந்தது ஒன்றைத் தேர்ந்தெடுக்கவும்.",
		"essential_need": "{0} இல் அறியப்படாத தேவை உள்ளது.",
		"latlng_pair":    "அட்சரேகை, தீர்க்கரேகை இரண்டையும் வழங்கவும் அல்லது இரண்டையும் காலியாக விடவும்.",
		"daterange":      "தொடக்க தேதி இறுதி தேதிக்கு முன் அல்லது அதே நாளாக இருக்க வேண்டும்.",
	},
}
