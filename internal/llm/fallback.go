package llm

// FallbackTable maps a language code to the deterministic pre-authored text
// the gateway returns when every backend is exhausted. The empty key is the
// default entry. The table is consulted only on total exhaustion, so swapping
// its contents never touches retry logic.
type FallbackTable map[string]string

// Lookup returns the entry for key, falling back to the default entry.
func (t FallbackTable) Lookup(key string) string {
	if text, ok := t[key]; ok {
		return text
	}
	return t[""]
}

// DefaultFallbackTable carries placeholder summaries for the stock language
// set. Each entry keeps the numbered-insight shape the generator expects.
func DefaultFallbackTable() FallbackTable {
	return FallbackTable{
		"": "1. Market data is temporarily unavailable; live generation could not be completed.\n" +
			"2. US equity indices showed mixed movement in recent sessions.\n" +
			"3. Federal Reserve policy remains the dominant theme for rate-sensitive sectors.\n" +
			"4. Corporate earnings reports continue to drive single-name volatility.\n" +
			"5. Investors should watch upcoming economic data releases for direction cues.",
		"en": "1. Market data is temporarily unavailable; live generation could not be completed.\n" +
			"2. US equity indices showed mixed movement in recent sessions.\n" +
			"3. Federal Reserve policy remains the dominant theme for rate-sensitive sectors.\n" +
			"4. Corporate earnings reports continue to drive single-name volatility.\n" +
			"5. Investors should watch upcoming economic data releases for direction cues.",
		"ar": "1. بيانات السوق غير متاحة مؤقتاً؛ تعذر إكمال التوليد المباشر.\n" +
			"2. أظهرت مؤشرات الأسهم الأمريكية حركة مختلطة في الجلسات الأخيرة.\n" +
			"3. تظل سياسة الاحتياطي الفيدرالي الموضوع المهيمن على القطاعات الحساسة للفائدة.\n" +
			"4. تواصل تقارير أرباح الشركات دفع التقلبات في الأسهم الفردية.\n" +
			"5. على المستثمرين متابعة البيانات الاقتصادية القادمة لتحديد الاتجاه.",
		"hi": "1. बाज़ार डेटा अस्थायी रूप से अनुपलब्ध है; लाइव जनरेशन पूरा नहीं हो सका।\n" +
			"2. अमेरिकी शेयर सूचकांकों में हाल के सत्रों में मिश्रित गतिविधि रही।\n" +
			"3. फेडरल रिज़र्व नीति ब्याज-संवेदनशील क्षेत्रों के लिए प्रमुख विषय बनी हुई है।\n" +
			"4. कॉर्पोरेट आय रिपोर्टें व्यक्तिगत शेयरों में उतार-चढ़ाव ला रही हैं।\n" +
			"5. निवेशकों को दिशा के संकेत के लिए आगामी आर्थिक आँकड़ों पर नज़र रखनी चाहिए।",
		"he": "1. נתוני השוק אינם זמינים זמנית; לא ניתן היה להשלים הפקה חיה.\n" +
			"2. מדדי המניות בארצות הברית הציגו תנועה מעורבת בימי המסחר האחרונים.\n" +
			"3. מדיניות הפדרל ריזרב נותרה הנושא המרכזי עבור סקטורים רגישי ריבית.\n" +
			"4. דוחות רווחים של חברות ממשיכים להניע תנודתיות במניות בודדות.\n" +
			"5. על המשקיעים לעקוב אחר נתונים כלכליים קרובים לקבלת כיוון.",
	}
}
