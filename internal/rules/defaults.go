package rules

// Built-in tables. The spam patterns were extracted from the store's own
// junk-folder corpus and grow over time through the learner's apply step;
// insertion order only matters for which rule a reason tag names first.

// officialDomains are the only legitimate sending domains per brand. Any
// message claiming one of these brands from another domain is impersonation.
var officialDomains = map[string][]string{
	"shopify":   {"@shopify.com", "@shopifymail.com", "@shopifyemail.com", "@shop.app", "@myshopify.com"},
	"meta":      {"@meta.com", "@metamail.com", "@fb.com"},
	"facebook":  {"@facebookmail.com", "@facebook.com", "@fb.com", "@support.facebook.com"},
	"instagram": {"@instagram.com", "@mail.instagram.com"},
	"tiktok":    {"@tiktok.com", "@tiktokmail.com", "@bytedance.com"},
	"google":    {"@google.com", "@googlemail.com", "@accounts.google.com"},
	"paypal":    {"@paypal.com", "@paypal.fr", "@e.paypal.com", "@e.paypal.fr"},
	"stripe":    {"@stripe.com", "@stripemail.com"},
}

// brandKeywords flag a message as CLAIMING to be a brand, not merely
// mentioning one. The keywords are identity phrases ("shopify support",
// not a bare "shopify") so an agency pitch that name-drops a platform is
// scored as solicitation instead of being escalated to impersonation.
var brandKeywords = map[string][]string{
	"shopify": {
		"shopifymailer", "shopify support", "shopify team", "shopify billing",
		"shopify security", "shopify account team", "shopify partner program",
	},
	"meta": {
		"meta business suite", "meta business support", "meta ads support",
		"meta support team", "meta security",
	},
	"facebook": {
		"facebookmail", "facebook support", "facebook security",
		"facebook team", "facebook business support", "facebook policy",
	},
	"instagram": {
		"instagram support", "instagram team", "instagram security",
		"instagram verification",
	},
	"tiktok": {
		"tiktok support", "tiktok team", "tiktok shop support",
		"tiktok security",
	},
	"google": {
		"google ads support", "google business support",
		"google merchant support",
	},
	"paypal": {
		"paypal support", "paypal security", "paypal team", "paypal service",
	},
	"stripe": {
		"stripe support", "stripe security", "stripe team",
	},
}

// platformDomains exempt genuine platform senders from the suspicious
// display-name bonus.
var platformDomains = []string{
	"@facebook.com", "@meta.com", "@tiktok.com", "@instagram.com",
}

var defaultSenderPatterns = []string{
	// Suspect academic and known-bad domains
	`@.*\.edu\.`,
	`@.*\.ac\.`,
	`@.*ksmg\.org`,
	`@.*thoimmo\.com`,
	`@ns\.`,

	// Junk-folder domain extractions
	`@.*\.edu\.pe$`,
	`@.*\.edu\.mx$`,
	`@.*\.edu\.ag$`,
	`@.*\.ac\.th$`,
	`@.*\.ac\.tz$`,
	`@.*amcoedu\.org$`,
	`@.*sell9proxy\.com$`,
	`@.*bigblue\.io$`,
	`@.*medias-france\.fr$`,
	`@.*datanetsystemslimited\.co\.uk$`,
	`@.*omnisend\.com$`,
	`@mail\.ru$`,

	// Fake Shopify support from consumer mailboxes
	`shopify.*@gmail\.com`,
	`info\.shopify.*@gmail\.com`,
	`contact\.shopify.*@gmail\.com`,
	`mailer\.shopify.*@gmail\.com`,
	`support.*shopify.*@gmail\.com`,
	`shopify.*@.*\.com$`,
	`shopify.*@outlook\.com`,
	`shopify.*@hotmail\.com`,
	`shopify.*@yahoo\.com`,

	// Fake Meta / Facebook / Instagram support
	`meta.*@gmail\.com`,
	`facebook.*@gmail\.com`,
	`fb.*support.*@gmail\.com`,
	`meta.*@outlook\.com`,
	`facebook.*@outlook\.com`,
	`meta.*@hotmail\.com`,
	`facebook.*@hotmail\.com`,
	`instagram.*@gmail\.com`,
	`instagram.*@outlook\.com`,

	// Solicitation mailbox name shapes
	`.*digital\d+@gmail\.com`,
	`.*expert\d+@gmail\.com`,
	`.*concept\d+@gmail\.com`,
	`.*diamond\d+@gmail\.com`,
	`.*agency\d+@gmail\.com`,
	`.*blessing@gmail\.com`,
	`.*samson\d+@gmail\.com`,
	`.*zaid\d+@gmail\.com`,
	`.*millen\d+@gmail\.com`,
	`.*delta@gmail\.com`,
	`.*treasured\d+@gmail\.com`,

	// name+digits cold-outreach shapes
	`[a-z]+\d{2,}@gmail\.com`,
	`[a-z]+[a-z]+\d{1,}@gmail\.com`,
	`.*praise.*@gmail\.com`,
	`.*blessed.*@gmail\.com`,
	`.*prince.*@gmail\.com`,
	`.*king.*@gmail\.com`,
	`.*lord.*@gmail\.com`,
	`.*star.*@gmail\.com`,
	`.*smart.*@gmail\.com`,
	`.*tech.*@gmail\.com`,
	`.*global.*@gmail\.com`,
	`.*world.*@gmail\.com`,
	`.*best.*@gmail\.com`,
	`.*top.*@gmail\.com`,
	`.*pro\d*@gmail\.com`,
	`.*ceo.*@gmail\.com`,
	`.*boss.*@gmail\.com`,
	`.*chief.*@gmail\.com`,

	// Role-word local parts on consumer mailboxes
	`.*\.hello@gmail\.com`,
	`.*hello\..*@gmail\.com`,
	`.*\.hi@gmail\.com`,
	`.*contact\..*@gmail\.com`,
	`.*info\..*@gmail\.com`,
	`.*support\..*@gmail\.com`,
	`.*sales\..*@gmail\.com`,
	`.*marketing\..*@gmail\.com`,
	`.*business\..*@gmail\.com`,
	`.*official\..*@gmail\.com`,
	`.*team\..*@gmail\.com`,
	`.*service\..*@gmail\.com`,

	// Known repeat senders
	`graecemarry@gmail\.com`,
	`.*marry\d*@gmail\.com`,
	`.*grace\d*@gmail\.com`,
}

var defaultSubjectPatterns = []string{
	// Account threats
	`account.*suspend`,
	`account.*restrict`,
	`compte.*suspendu`,
	`compte.*restreint`,
	`account.*disabled`,
	`compte.*désactivé`,
	`violation.*policy`,
	`violation.*règl`,
	`enforcement.*measure`,
	`mesure.*application`,

	// Facebook / Meta urgency
	`facebook.*urgent`,
	`meta.*urgent`,
	`page.*facebook.*viola`,
	`pagina.*facebook.*viola`,
	`advertising.*account`,
	`compte.*publicitaire`,

	// Generic phishing
	`verify.*account`,
	`vérif.*compte`,
	`confirm.*identity`,
	`confirm.*identité`,
	`update.*payment`,
	`mettre.*jour.*paiement`,
	`unusual.*activity`,
	`activité.*inhabituelle`,

	// Fake delivery problems
	`delivery.*fail`,
	`livraison.*échou`,
	`package.*held`,
	`colis.*retenu`,

	// Classic scams
	`lottery.*winner`,
	`gagn.*loterie`,
	`inheritance`,
	`héritage`,
	`nigerian.*prince`,

	// Italian-language Shopify checkout scams
	`problema.*di.*pagamento.*checkout`,
	`problemi.*di.*checkout`,
	`supporto.*urgente.*problemi`,
	`aggiornamento.*sul.*checkout`,
	`avviso.*di.*sicurezza`,
	`pagamenti.*di.*due.*clienti`,
	`conformità.*alla.*licenza`,
	`problème.*lors.*du.*processus`,

	// Empty or one-word subjects typical of cold outreach
	`^aucun.*objet$`,
	`^hello$`,
	`^hola$`,
	`^hi$`,
	`^hey$`,
	`^avenaparis$`,
	`^avena.*paris$`,
	`^quick.*chat$`,
	`^new.*message.*for`,
	`^hello.*avenaparis`,
	`^hi.*avenaparis`,
	`^hey.*avenaparis`,
	`^\d+\s*new\s*order`,
	`^new\s*order$`,
	`^order\s*confirmation$`,
	`^greetings$`,
	`^salut$`,
	`^salut.*avena`,
	`^bonjour$`,
	`^important.*message$`,
	`^urgent$`,
	`^urgent.*message`,
	`^question$`,
	`^quick.*question`,
	`^inquiry$`,
	`^request$`,
	`^opportunity$`,
	`^proposal$`,
	`^partnership$`,
	`^collaboration$`,
	`is.*this.*your.*active`,
	`your.*active.*business`,
	`anyone.*here.*to.*attend`,

	// "Quick idea" outreach
	`id[ée]e.*rapide`,
	`quick.*idea`,
	`id[ée]e.*pour.*avena`,
	`idea.*for.*avena`,
	`thought.*for.*avena`,

	// Prospecting
	`web.*design.*development.*services`,
	`hire.*contemporary.*web`,
	`dropshipping.*cost.*down`,
	`buyers.*decide.*trust`,
	`smart.*reviews.*start`,
	`i'll.*rebuild.*it`,
	`cannes.*connect`,
	`selection.*finale`,
	`how.*do.*you.*see.*this`,
	`i.*love.*your.*product`,

	// Unsolicited B2B / agency services
	`boost.*your.*business`,
	`boost.*votre.*entreprise`,
	`grow.*your.*business`,
	`développ.*votre.*activité`,
	`increase.*your.*sales`,
	`augment.*vos.*ventes`,
	`partnership.*opportunity`,
	`opportunité.*partenariat`,
	`collaboration.*proposal`,
	`proposition.*collaboration`,
	`business.*proposal`,
	`proposition.*commerciale`,
	`offer.*services`,
	`propos.*services`,
	`looking.*for.*partner`,
	`recherch.*partenaire`,

	// SEO / digital marketing
	`seo.*services`,
	`référencement.*site`,
	`rank.*google`,
	`premier.*google`,
	`améliorer.*visibilité`,
	`improve.*visibility`,
	`digital.*marketing`,
	`marketing.*digital`,
	`social.*media.*marketing`,
	`community.*manager`,
	`influencer.*marketing`,
	`marketing.*influence`,
	`lead.*generation`,
	`génération.*leads`,

	// Web / app development
	`website.*redesign`,
	`refonte.*site`,
	`mobile.*app.*develop`,
	`développ.*application`,
	`ecommerce.*solution`,
	`solution.*ecommerce`,
	`shopify.*expert`,
	`expert.*shopify`,

	// Unsolicited financing
	`business.*loan`,
	`prêt.*entreprise`,
	`financement.*rapide`,
	`quick.*funding`,
	`merchant.*cash`,
	`avance.*trésorerie`,

	// Sourcing / suppliers
	`factory.*direct`,
	`usine.*direct`,
	`wholesale.*supplier`,
	`fournisseur.*gros`,
	`alibaba`,
	`made.*in.*china`,
	`manufacturer.*offer`,
	`fabricant.*propos`,
	`product.*sourcing`,
	`sourcing.*produit`,

	// Unsolicited recruitment
	`outsourc.*team`,
	`équipe.*offshore`,
	`virtual.*assistant`,
	`assistant.*virtuel`,
	`hire.*developer`,
	`recrut.*développeur`,

	// Event and webinar invitations
	`exclusive.*invitation`,
	`invitation.*exclusive`,
	`webinar.*invitation`,
	`invitation.*webinaire`,
	`free.*consultation`,
	`consultation.*gratuite`,
	`free.*audit`,
	`audit.*gratuit`,
	`limited.*time.*offer`,
	`offre.*limitée`,
	`special.*discount`,
	`réduction.*spéciale`,

	// Influencer / affiliate / UGC outreach
	`influencer`,
	`influenceur`,
	`ugc.*creator`,
	`créateur.*ugc`,
	`content.*creator`,
	`créateur.*contenu`,
	`brand.*ambassador`,
	`ambassadeur`,
	`affiliate.*program`,
	`programme.*affiliation`,
	`commission.*based`,
	`basé.*commission`,
	`confirmed.*orders`,
	`commandes.*confirmées`,
	`success.*based`,
	`strategic.*creative`,
	`creative.*expert`,
	`creative.*agency`,
	`agence.*créative`,

	// Pre-sale questions from non-customers
	`do.*you.*ship.*to`,
	`livrez.*vous`,
	`expédiez.*vous`,
	`ship.*internationally`,
	`livraison.*international`,
	`wholesale.*inquiry`,
	`demande.*gros`,
	`bulk.*order`,
	`commande.*volume`,
	`reseller`,
	`revendeur`,
	`distributor`,
	`distributeur`,
}

var defaultBodyPatterns = []string{
	// Pressure links
	`click.*here.*immediately`,
	`cliquez.*ici.*immédiatement`,
	`act.*now.*avoid`,
	`agissez.*maintenant`,
	`within.*24.*hours`,
	`dans.*24.*heures`,
	`account.*will.*be.*deleted`,
	`compte.*sera.*supprimé`,

	// Requests for sensitive data
	`send.*password`,
	`envoy.*mot.*passe`,
	`credit.*card.*number`,
	`numéro.*carte`,
	`social.*security`,
	`numéro.*sécurité.*sociale`,

	// Cold-outreach body phrases
	`i.*came.*across.*your.*website`,
	`j.*ai.*découvert.*votre.*site`,
	`i.*found.*your.*company`,
	`j.*ai.*trouvé.*votre.*entreprise`,
	`i.*am.*reaching.*out`,
	`je.*me.*permets.*de.*vous.*contacter`,
	`je.*vous.*contacte.*car`,
	`we.*specialize.*in`,
	`nous.*sommes.*spécialisés`,
	`our.*agency`,
	`notre.*agence`,
	`our.*team.*can.*help`,
	`notre.*équipe.*peut.*vous.*aider`,
	`book.*a.*call`,
	`réserv.*un.*appel`,
	`schedule.*a.*meeting`,
	`planifi.*une.*réunion`,
	`let.*me.*know.*if.*interested`,
	`dites.*moi.*si.*vous.*êtes.*intéressé`,
	`would.*you.*be.*open.*to`,
	`seriez.*vous.*ouvert.*à`,
	`i.*would.*love.*to.*discuss`,
	`j.*aimerais.*discuter`,
	`quick.*question`,
	`petite.*question`,
	`shall.*i.*send.*more.*info`,
	`puis.*je.*vous.*envoyer.*plus.*d.*info`,
	`looking.*forward.*to.*your.*reply`,
	`dans.*l.*attente.*de.*votre.*réponse`,
	`best.*rates.*guarantee`,
	`meilleurs.*tarifs`,
	`increase.*traffic`,
	`augmenter.*trafic`,
	`boost.*conversions`,
	`optimiser.*conversions`,
	`roi.*guarantee`,
	`garantie.*retour.*investissement`,
	`free.*trial`,
	`essai.*gratuit`,
	`no.*obligation`,
	`sans.*engagement`,

	// Influencer / affiliate / UGC outreach
	`confirmed.*orders`,
	`commandes.*confirmées`,
	`commission.*based`,
	`basé.*sur.*commission`,
	`success.*based.*commission`,
	`paid.*only.*after.*sales`,
	`payé.*après.*ventes`,
	`growth.*goals`,
	`objectifs.*croissance`,
	`ugc.*creator`,
	`créateur.*ugc`,
	`content.*creator`,
	`créateur.*contenu`,
	`brand.*ambassador`,
	`ambassadeur.*marque`,
	`affiliate`,
	`affiliation`,
	`influencer.*marketing`,
	`marketing.*influence`,
	`collab.*proposal`,
	`proposition.*collab`,
	`work.*together`,
	`travailler.*ensemble`,
	`partnership.*inquiry`,
	`demande.*partenariat`,
	`how.*does.*\d+.*orders.*sound`,
	`que.*pensez.*vous.*de.*\d+.*commandes`,
	`before.*january`,
	`avant.*janvier`,
	`before.*february`,
	`before.*march`,
	`interested.*in.*promoting`,
	`intéressé.*promouvoir`,

	// Shipping questions from non-customers
	`do.*you.*ship.*to`,
	`ship.*to.*the.*united.*states`,
	`ship.*to.*usa`,
	`ship.*to.*uk`,
	`ship.*internationally`,
	`livrez.*vous.*à`,
	`expédiez.*vous`,
	`international.*shipping`,
	`livraison.*internationale`,

	// B2B / wholesale requests
	`wholesale.*price`,
	`prix.*gros`,
	`bulk.*order`,
	`commande.*volume`,
	`reseller.*discount`,
	`remise.*revendeur`,
	`distributor.*inquiry`,
	`devenir.*distributeur`,
	`retail.*partnership`,
	`partenariat.*retail`,

	// High-frequency cold-outreach closers
	`is.*your.*store.*live`,
	`your.*store.*live.*and.*making`,
	`help.*you.*consistently.*generate`,
	`generate.*\d+.*sales.*per.*day`,
	`newly.*proven.*strategy`,
	`would.*you.*be.*open.*to.*learning`,
	`open.*to.*learning.*how`,
	`increase.*conversions`,
	`boost.*your.*sales`,
	`grow.*your.*store`,
	`scale.*your.*business`,
	`hello.*there`,
	`hello.*anyone.*here`,
	`anyone.*here.*to.*attend`,
	`attend.*to.*me`,
	`get.*back.*to.*me`,
	`let.*me.*know.*if.*you.*are`,
	`kindly.*get.*back`,
	`kindly.*reply`,
	`awaiting.*your.*response`,
	`hope.*to.*hear.*from.*you`,
	`looking.*forward.*to.*hearing`,

	// Freelancer and agency pitches
	`i.*specialize.*in`,
	`my.*name.*is.*and.*i`,
	`i.*am.*a.*freelance`,
	`i.*am.*a.*professional`,
	`i.*offer.*my.*services`,
	`we.*offer.*our.*services`,
	`i.*can.*help.*you.*with`,
	`we.*can.*help.*you.*with`,
	`i.*noticed.*your.*store`,
	`i.*noticed.*your.*website`,
	`i.*came.*across.*your`,
	`i.*found.*your.*store`,
	`i.*was.*browsing.*your`,
	`your.*store.*caught.*my`,
	`i.*would.*like.*to.*offer`,
	`we.*would.*like.*to.*offer`,
	`i.*have.*experience.*in`,
	`years.*of.*experience`,
	`let.*me.*introduce.*myself`,
	`allow.*me.*to.*introduce`,
	`i.*am.*reaching.*out.*because`,
	`i.*am.*writing.*to.*you.*because`,
	`i.*wanted.*to.*reach.*out`,
	`just.*wanted.*to.*reach.*out`,
	`reaching.*out.*to.*see.*if`,
	`i.*have.*a.*proposal`,
	`i.*have.*an.*idea`,
	`i.*have.*a.*question.*for.*you`,
	`quick.*question.*for.*you`,
	`i.*have.*something.*interesting`,
	`i.*think.*i.*can.*help`,
	`i.*believe.*i.*can.*help`,
	`are.*you.*interested.*in`,
	`would.*you.*be.*interested`,
	`interested.*in.*working.*together`,
	`let's.*work.*together`,
	`let's.*collaborate`,
	`open.*for.*collaboration`,
	`looking.*for.*collaboration`,
	`partnership.*opportunity`,
	`business.*opportunity`,
	`exciting.*opportunity`,
	`great.*opportunity`,
	`unique.*opportunity`,

	// Services commonly pitched by spammers
	`video.*editing`,
	`photo.*editing`,
	`graphic.*design`,
	`logo.*design`,
	`web.*design`,
	`website.*design`,
	`app.*development`,
	`mobile.*app`,
	`seo.*service`,
	`social.*media.*management`,
	`content.*creation`,
	`copywriting`,
	`email.*marketing`,
	`lead.*generation`,
	`virtual.*assistant`,
	`customer.*service.*support`,
	`data.*entry`,
	`bookkeeping`,
	`accounting.*service`,
}

// whitelistSenders force a not-spam verdict. These domains are matched on
// the full lowercased sender address and anchored on the domain suffix.
var whitelistSenders = []string{
	// Shopify official domains
	`@shopify\.com$`,
	`@shopifymail\.com$`,
	`@shopifyemail\.com$`,
	`@shop\.app$`,
	`@shops\.app$`,
	`@myshopify\.com$`,

	// Meta / Facebook / Instagram official domains
	`@facebookmail\.com$`,
	`@facebook\.com$`,
	`@fb\.com$`,
	`@meta\.com$`,
	`@metamail\.com$`,
	`@instagram\.com$`,
	`@mail\.instagram\.com$`,
	`@business\.fb\.com$`,
	`@support\.facebook\.com$`,
	`@notification\.facebook\.com$`,
	`@mediapartners\.facebook\.com$`,

	// Google / YouTube
	`@google\.com$`,
	`@googlemail\.com$`,
	`@youtube\.com$`,
	`@accounts\.google\.com$`,

	// TikTok official domains
	`@tiktok\.com$`,
	`@tiktokmail\.com$`,
	`@bytedance\.com$`,

	// Marketing / CRM
	`@klaviyo\.com$`,
	`@klaviyomail\.com$`,
	`@mailchimp\.com$`,
	`@mailchimpapp\.com$`,
	`@sendinblue\.com$`,
	`@brevo\.com$`,
	`@hubspot\.com$`,
	`@hubspotmail\.com$`,

	// Payments
	`@stripe\.com$`,
	`@stripemail\.com$`,
	`@paypal\.com$`,
	`@paypal\.fr$`,
	`@e\.paypal\.com$`,
	`@e\.paypal\.fr$`,
	`@mollie\.com$`,
	`@alma\.eu$`,

	// French carriers
	`@colissimo\.fr$`,
	`@laposte\.fr$`,
	`@notification\.laposte\.fr$`,
	`@chronopost\.fr$`,
	`@mondialrelay\.fr$`,
	`@mondialrelay\.com$`,
	`@relais-colis\.com$`,
	`@gls-france\.com$`,
	`@dpd\.fr$`,

	// International carriers and tracking
	`@ups\.com$`,
	`@upsemail\.com$`,
	`@dhl\.com$`,
	`@dhl\.fr$`,
	`@fedex\.com$`,
	`@track\.aftership\.com$`,
	`@parcelpanel\.com$`,
	`@17track\.net$`,

	// Marketplaces
	`@amazon\.fr$`,
	`@amazon\.com$`,
	`@marketplace\.amazon\.fr$`,
	`@etsy\.com$`,
	`@ebay\.fr$`,
	`@ebay\.com$`,

	// Own mail system and own domain
	`@zoho\.com$`,
	`@zohomail\.com$`,
	`@avenaparis\.com$`,
}

// whitelistSubjects cover the shop's own transactional subject lines
// (confirmations, receipts, shipping notices) echoed back by mail systems.
// They are anchored so a customer question that merely mentions an order
// still reaches the real-customer stage.
var whitelistSubjects = []string{
	`^confirmation\s*de\s*commande\s*#?\d+`,
	`^votre\s*commande.*a\s*été\s*expédiée`,
	`^your\s*order.*has\s*(been\s*)?shipped`,
	`^votre\s*colis\s*est\s*en\s*route`,
	`^reçu\s*de\s*paiement`,
	`^payment\s*receipt`,
	`^facture\s*n[°o]`,
	`^avis\s*de\s*livraison`,
}

// clientPhrases indicate someone writing about THEIR OWN order. A match is a
// terminal not-spam verdict: someone asking about their order is a customer,
// someone promising to bring orders is a solicitor.
var clientPhrases = []string{
	// First-person order references
	`ma\s*commande`,
	`mon\s*colis`,
	`mon\s*achat`,
	`my\s*order`,
	`my\s*package`,
	`mi\s*pedido`,
	`mijn\s*bestelling`,
	`meine\s*bestellung`,
	`il\s*mio\s*ordine`,

	// Explicit order numbers
	`commande\s*n[°o]?\s*\d+`,
	`order\s*n[°o]?\s*\d+`,
	`#\d{4,}`,
	`n°\s*\d{4,}`,

	// Questions about their order
	`où\s*en\s*est\s*ma`,
	`where\s*is\s*my`,
	`quand\s*vais.*je\s*recevoir`,
	`when\s*will\s*i\s*receive`,
	`pas\s*encore\s*reçu`,
	`not\s*yet\s*received`,
	`toujours\s*pas\s*reçu`,
	`still\s*waiting`,
	`j'attends`,
	`i\s*ordered`,
	`j'ai\s*commandé`,
	`j'ai\s*passé\s*commande`,

	// Problems with their order
	`article\s*manquant`,
	`missing\s*item`,
	`produit\s*défectueux`,
	`defective\s*product`,
	`colis\s*endommagé`,
	`package\s*damaged`,
	`mauvaise\s*taille`,
	`wrong\s*size`,
	`erreur\s*dans\s*ma`,
	`error\s*in\s*my`,

	// Returns and refunds
	`je\s*souhaite\s*retourner`,
	`i\s*want\s*to\s*return`,
	`je\s*voudrais\s*être\s*remboursé`,
	`i\s*would\s*like\s*a\s*refund`,
	`demande\s*de\s*retour`,
	`return\s*request`,
	`échanger\s*mon`,
	`exchange\s*my`,

	// Tracking their order
	`suivi\s*de\s*ma`,
	`tracking\s*(number|info)`,
	`numéro\s*de\s*suivi`,
	`statut\s*de\s*ma`,
	`status\s*of\s*my`,

	// Changing their order
	`modifier\s*ma\s*commande`,
	`change\s*my\s*order`,
	`annuler\s*ma\s*commande`,
	`cancel\s*my\s*order`,
	`changer\s*l'adresse`,
	`change\s*the\s*address`,
}

// suspiciousNames are display-name words typical of impersonators and
// solicitation senders.
var suspiciousNames = []string{
	"facebook", "meta", "tiktok", "instagram", "support", "security", "admin",
	// Generic agency and outreach jargon
	"strategic", "creative", "agency", "marketing", "growth", "partner",
	"influencer", "ugc", "ambassador", "affiliate", "expert", "consultant",
	"solutions", "services", "digital", "media", "studio", "labs",
	// Additional repeat offenders
	"xpert", "radex", "boost", "promo", "offer", "deal", "sales",
}

// freemailLocalShapes catch name+digits mailbox shapes on consumer
// providers, e.g. adeola07 or kennydiamond39.
var freemailLocalShapes = []string{
	`^[a-z]+\d{2,}$`,
	`^[a-z]+[a-z]+\d+$`,
}

// FreemailLocalShapes returns the compiled local-part shape patterns. They
// are part of the built-in tables rather than configuration because the
// shapes and the scorer's freemail bonus are tuned together.
func FreemailLocalShapes() []Rule {
	rules, err := compileAll(freemailLocalShapes)
	if err != nil {
		// The shapes are compile-time constants; a failure here is a
		// programming error.
		panic(err)
	}
	return rules
}
