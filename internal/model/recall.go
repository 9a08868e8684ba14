package model

// RecallRecord is a product recall notice as published by the public recall registry.
// Every field is display text passed through verbatim.
type RecallRecord struct {
	Category               string `json:"categorie_de_produit"`
	Brand                  string `json:"nom_de_la_marque_du_produit"`
	ModelReferences        string `json:"noms_des_modeles_ou_references"`
	Identification         string `json:"identification_des_produits"`
	Reason                 string `json:"motif_du_rappel"`
	Risks                  string `json:"risques_encourus_par_le_consommateur"`
	SanitaryRecommendation string `json:"preconisations_sanitaires"`
	RiskDescription        string `json:"description_complementaire_du_risque"`
	ConsumerAction         string `json:"conduites_a_tenir_par_le_consommateur"`
}
